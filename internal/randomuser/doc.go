// Package randomuser is the HTTP client for the randomuser.me API.
//
// The client performs plain GET requests and hands back every completed
// response as a RawResponse, whatever its status code; classifying 4xx/5xx
// is left to the caller. Transport problems (dial, TLS, header or body
// timeouts, resets) surface as *NetworkFailure.
//
// Timeouts
//
//   - ConnectTimeout bounds dialing and the TLS handshake.
//   - ReadTimeout bounds the wait for response headers and every pause
//     between two successful body reads.
//
// Request and response bodies are logged at debug level.
package randomuser
