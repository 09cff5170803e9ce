package utils

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	chi "github.com/go-chi/chi/v5"
	"github.com/leeforge/modkit/json"
)

// PrintJSON writes v to w as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// PrintRoutes writes every route registered in r to w.
func PrintRoutes(w io.Writer, r chi.Routes) error {
	walkFunc := func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		_, err := fmt.Fprintf(w, "%-6s %s\n", method, strings.Replace(route, "/*/", "/", -1))
		return err
	}
	return chi.Walk(r, walkFunc)
}
