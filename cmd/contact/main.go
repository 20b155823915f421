// Command contact submits one contact message to a running portfolio API.
//
//	contact -url http://localhost:8080 -name Ana -email ana@example.com -message "Hi"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/portfolio/backend/pkg/client"
	"github.com/portfolio/backend/pkg/contract"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "API base URL")
	name := flag.String("name", "", "sender name")
	email := flag.String("email", "", "sender email")
	message := flag.String("message", "", "message text")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	form := client.NewForm(client.New(*baseURL, nil))
	form.Set(contract.ContactInput{Name: *name, Email: *email, Message: *message})

	fmt.Fprintln(os.Stderr, form.SubmitLabel())
	if err := form.Submit(ctx); err != nil {
		for field, msg := range form.FieldErrors() {
			fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
		}
		if msg := form.ErrorMessage(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		var ferr *contract.FieldError
		if errors.As(err, &ferr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
	fmt.Println(form.Notice())
}
