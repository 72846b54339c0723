package registration

import (
	"context"
	"fmt"
	"sync"

	"github.com/colonyops/regform/internal/core/notify"
)

func validPDF() FileSelection {
	return FileSelection{
		Name:     "abstract.pdf",
		MimeType: "application/pdf",
		Size:     1 << 20,
		Content:  []byte("%PDF-1.7"),
	}
}

func validMember(i int) MemberRecord {
	return MemberRecord{
		Name:        fmt.Sprintf("Member %d", i),
		Email:       fmt.Sprintf("member%d@example.org", i),
		Phone:       fmt.Sprintf("555000000%d", i%10),
		Affiliation: "State University",
	}
}

// filledState returns a fully valid form with size members.
func filledState(size int) FormState {
	s := New(DefaultSettings())
	d := Draft{
		TeamName:  "Null Pointers",
		TeamSize:  size,
		ProblemID: "PS-07",
		Domain:    "AI/ML",
	}
	for i := range size {
		d.Members = append(d.Members, validMember(i))
	}
	for _, ev := range d.Events() {
		s, _ = Reduce(s, ev)
	}
	s, _ = Reduce(s, FileSelected{File: validPDF(), Source: SourcePicker})
	return s
}

// fakeSender records every submission and returns the configured outcome.
type fakeSender struct {
	mu      sync.Mutex
	calls   []Submission
	receipt Receipt
	err     error
	during  func() // runs while the request is "in flight"
}

func (f *fakeSender) Send(_ context.Context, sub Submission) (Receipt, error) {
	f.mu.Lock()
	f.calls = append(f.calls, sub)
	during := f.during
	f.mu.Unlock()

	if during != nil {
		during()
	}
	return f.receipt, f.err
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// recorder collects published notifications.
type recorder struct {
	items []notify.Notification
}

func (r *recorder) Publish(n notify.Notification) {
	r.items = append(r.items, n)
}

func (r *recorder) last() notify.Notification {
	if len(r.items) == 0 {
		return notify.Notification{}
	}
	return r.items[len(r.items)-1]
}
