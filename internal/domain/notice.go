package domain

import "fmt"

// NoticeLevel classifies a user-visible notice.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a non-fatal, human-readable message shown alongside a render.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// Notifier receives notices produced while loading or geocoding.
type Notifier interface {
	Notify(Notice)
}

// Notices collects notices in the order they were emitted.
type Notices []Notice

func (n *Notices) Notify(notice Notice) {
	*n = append(*n, notice)
}

// Notifyf emits a formatted notice. A nil notifier drops it.
func Notifyf(n Notifier, level NoticeLevel, format string, args ...any) {
	if n == nil {
		return
	}
	n.Notify(Notice{Level: level, Message: fmt.Sprintf(format, args...)})
}
