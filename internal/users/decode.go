package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

var validate = validator.New()

// Decode parses a response body into a UserList. The body must be a single
// JSON object carrying every required field; anything else yields a
// *DecodeFailure and no partial result.
func Decode(body string) (UserList, error) {
	trimmed := strings.TrimSpace(body)
	if !strings.HasPrefix(trimmed, "{") {
		return UserList{}, &DecodeFailure{Reason: "body is not a JSON object"}
	}

	var list UserList
	if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
		return UserList{}, &DecodeFailure{Reason: err.Error(), Err: err}
	}

	if err := validate.Struct(list); err != nil {
		return UserList{}, &DecodeFailure{Reason: describe(err), Err: err}
	}
	return list, nil
}

// From maps v onto a UserList. Values that are already a UserList are
// returned unchanged; textual input goes through Decode.
func From(v any) (UserList, error) {
	switch x := v.(type) {
	case UserList:
		return x, nil
	case *UserList:
		if x == nil {
			return UserList{}, &DecodeFailure{Reason: "nil user list"}
		}
		return *x, nil
	case string:
		return Decode(x)
	case []byte:
		return Decode(string(x))
	default:
		return UserList{}, &DecodeFailure{Reason: fmt.Sprintf("unsupported input type %T", v)}
	}
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", fe.Namespace()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", fe.Namespace()))
		}
	}
	return strings.Join(msgs, ", ")
}
