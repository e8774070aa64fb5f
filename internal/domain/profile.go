package domain

import (
	"context"
	"encoding/json"
	"time"
)

const ContextProfileKey = "requestProfile"

// Profile collects coarse per-request timing spans; the submit flow attaches
// one to its context and logs it when the request ends.
type Profile struct {
	Spans   []*Span `json:"spans"`
	TotalMs *int64  `json:"totalMs"`
	startTs time.Time
}

type Span struct {
	Name    string `json:"name"`
	Elapsed *int64 `json:"elapsedMs"`
	startTs time.Time
}

func NewProfile() (*Profile, func()) {
	p := &Profile{
		Spans:   []*Span{},
		startTs: time.Now(),
	}
	return p, p.End
}

// GetProfile returns the profile attached to ctx, or a throwaway one so
// callers never need a nil check.
func GetProfile(ctx context.Context) *Profile {
	if p, ok := ctx.Value(ContextProfileKey).(*Profile); ok {
		return p
	}
	p, _ := NewProfile()
	return p
}

func (p *Profile) End() {
	if len(p.Spans) > 0 {
		p.Spans[len(p.Spans)-1].End()
	}
	if p.TotalMs == nil {
		t := time.Since(p.startTs).Milliseconds()
		p.TotalMs = &t
	}
}

// StartNewSpan ends the last span and begins a new one. Not thread safe.
func (p *Profile) StartNewSpan(name string) *Span {
	if len(p.Spans) > 0 {
		p.Spans[len(p.Spans)-1].End()
	}
	s := &Span{Name: name, startTs: time.Now()}
	p.Spans = append(p.Spans, s)
	return s
}

func (s *Span) End() {
	if s.Elapsed == nil {
		t := time.Since(s.startTs).Milliseconds()
		s.Elapsed = &t
	}
}

func (p *Profile) ToJsonBytes() ([]byte, error) {
	return json.Marshal(p)
}
