// Package notify builds the short status messages shown after an operation.
package notify

import (
	"fmt"
	"io"

	"Linkshelf/internal/cli/api"
)

type Kind int

const (
	Success Kind = iota
	Failure
	Info
)

// Notification: одно сообщение оператору.
type Notification struct {
	Kind        Kind
	Title       string
	Description string
}

func (n Notification) prefix() string {
	switch n.Kind {
	case Success:
		return "✓"
	case Failure:
		return "×"
	default:
		return "•"
	}
}

// String renders the notification as one line.
func (n Notification) String() string {
	if n.Description == "" {
		return n.prefix() + " " + n.Title
	}
	return fmt.Sprintf("%s %s: %s", n.prefix(), n.Title, n.Description)
}

// Print writes n to w followed by a newline.
func Print(w io.Writer, n Notification) {
	_, _ = fmt.Fprintln(w, n.String())
}

func Done(title string) Notification {
	return Notification{Kind: Success, Title: title}
}

// Failed describes a failed operation using the backend's reason when there is one.
func Failed(title string, err error) Notification {
	return Notification{Kind: Failure, Title: title, Description: api.Message(err)}
}

// TagDeleteFailed names the tag; for a conflict the backend explains which bookmarks hold it.
func TagDeleteFailed(tagName string, err error) Notification {
	n := Notification{Kind: Failure, Title: fmt.Sprintf("Cannot delete tag %q", tagName)}
	switch api.KindOf(err) {
	case api.KindConflict:
		n.Description = api.Message(err)
	case api.KindNotFound:
		n.Description = "it may already be gone"
	default:
		n.Description = api.Message(err)
	}
	return n
}

// DeleteFailed covers the remaining resources. A 404 means someone else removed
// the item first.
func DeleteFailed(what string, err error) Notification {
	n := Notification{Kind: Failure, Title: "Cannot delete " + what, Description: api.Message(err)}
	if api.KindOf(err) == api.KindNotFound {
		n.Description = "it may already be gone"
	}
	return n
}
