package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/userfeed/internal/pipeline"
	"github.com/dmitrijs2005/userfeed/internal/users"
)

func renderState(w io.Writer, st pipeline.State) {
	switch s := st.(type) {
	case pipeline.Idle:
		fmt.Fprintln(w, "Nothing loaded yet, type 'fetch'")
	case pipeline.Loading:
		fmt.Fprintln(w, "Loading...")
	case pipeline.Failure:
		fmt.Fprintln(w, "Error: "+s.Message)
	case pipeline.Success:
		renderList(w, s.Users)
	}
}

func renderList(w io.Writer, list users.UserList) {
	if list.Len() == 0 {
		fmt.Fprintln(w, "No users")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, u := range list.Results {
		fmt.Fprintf(tw, "%d.\t%s\t%s\t%s\n", i+1, u.Name.First, u.Email, u.UUID())
	}
	_ = tw.Flush()
}

func renderDetail(w io.Writer, u users.UserRecord) {
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s %s\n", u.Name.Title, u.FullName())
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "Phone:\t%s\n", u.Phone)
	fmt.Fprintf(tw, "Gender:\t%s\n", u.Gender)
	fmt.Fprintf(tw, "Country:\t%s\n", u.Location.Country)
	fmt.Fprintf(tw, "Picture:\t%s\n", u.Picture.Large)
	fmt.Fprintf(tw, "UUID:\t%s\n", u.UUID())
	_ = tw.Flush()
}
