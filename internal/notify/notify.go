// Package notify carries transient user-visible messages, the terminal
// stand-in for the site's toast notifications.
package notify

import "fmt"

type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Terminal prints notifications to stdout.
type Terminal struct{}

func (Terminal) Success(msg string) {
	if msg == "" {
		return
	}
	fmt.Println("✔ " + msg)
}

func (Terminal) Error(msg string) {
	if msg == "" {
		return
	}
	fmt.Println("✘ " + msg)
}

// Discard drops every notification; used in tests.
type Discard struct{}

func (Discard) Success(string) {}
func (Discard) Error(string)   {}
