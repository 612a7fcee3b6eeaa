package reactive

import "fmt"

// NotificationKind identifies which signal a Notification carries.
type NotificationKind int

const (
	KindNext NotificationKind = iota
	KindError
	KindCompleted
)

func (k NotificationKind) String() string {
	switch k {
	case KindNext:
		return "next"
	case KindError:
		return "error"
	case KindCompleted:
		return "completed"
	default:
		return fmt.Sprintf("NotificationKind(%d)", int(k))
	}
}

// Notification is a signal turned into a value, as produced by Materialize.
type Notification struct {
	kind  NotificationKind
	value any
	err   error
}

func NextNotification(value any) Notification {
	return Notification{kind: KindNext, value: value}
}

func ErrorNotification(err error) Notification {
	return Notification{kind: KindError, err: err}
}

func CompletedNotification() Notification {
	return Notification{kind: KindCompleted}
}

func (n Notification) Kind() NotificationKind { return n.kind }

// Value is the emitted value of a next notification, nil otherwise.
func (n Notification) Value() any { return n.value }

// Err is the failure of an error notification, nil otherwise.
func (n Notification) Err() error { return n.err }

// Accept replays the notification on o.
func (n Notification) Accept(o Observer) {
	switch n.kind {
	case KindNext:
		o.OnNext(n.value)
	case KindError:
		o.OnError(n.err)
	case KindCompleted:
		o.OnCompleted()
	}
}

func (n Notification) String() string {
	switch n.kind {
	case KindNext:
		return fmt.Sprintf("next(%v)", n.value)
	case KindError:
		return fmt.Sprintf("error(%v)", n.err)
	default:
		return n.kind.String()
	}
}
