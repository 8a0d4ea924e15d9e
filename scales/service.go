package scales

import (
	"context"
	"errors"
	"regexp"
	"time"
)

var (
	ErrInvalidRange = errors.New("invalid range parameter")
	ErrInvalidUser  = errors.New("invalid user_id parameter")
	ErrInvalidSpan  = errors.New("invalid start/stop parameter")
)

// MaxRangeHours bounds the range of history requests to 100 years
const MaxRangeHours = 100 * 365 * 24

var userIDPattern = regexp.MustCompile(`^[A-Za-z0-9_.@-]{1,128}$`)

// ValidateUserID rejects identifiers that cannot be placed into a query safely
func ValidateUserID(id string) error {
	if !userIDPattern.MatchString(id) {
		return ErrInvalidUser
	}
	return nil
}

// Mode selects how rows are queried and folded
type Mode int

const (
	// ModeRaw returns the bucket means
	ModeRaw Mode = iota
	// ModeClientAccumulated queries raw rows and accumulates them here
	ModeClientAccumulated
	// ModeServerAccumulated lets the backend accumulate, if it can
	ModeServerAccumulated
)

type Config struct {
	// DefaultUser is used when a request does not name a user
	DefaultUser string
	Absent      AbsentPolicy

	// StepPerHour is the bucket width per requested hour of history
	StepPerHour time.Duration
	DailyStep   time.Duration

	LatestWindow time.Duration
}

var DefaultConfig = Config{
	DefaultUser:  "test-user1",
	Absent:       AbsentZero,
	StepPerHour:  5 * time.Second,
	DailyStep:    24 * time.Hour,
	LatestWindow: 48 * time.Hour,
}

// RangeRequest covers the last Hours hours
type RangeRequest struct {
	Hours  int
	UserID string
}

// SpanRequest covers [Start, Stop) in epoch seconds
type SpanRequest struct {
	Start  int64
	Stop   int64
	UserID string
}

// Service answers dashboard requests from a backend. It holds no per-request
// state, a fresh folder is created for every query.
type Service struct {
	backend Backend
	conf    Config

	Now func() time.Time
}

func NewService(backend Backend, conf Config) *Service {
	return &Service{
		backend: backend,
		conf:    conf,
		Now:     time.Now,
	}
}

func (s *Service) History(ctx context.Context, r RangeRequest) (Series, error) {
	q, err := s.rangeQuery(r)
	if err != nil {
		return Series{}, err
	}
	return s.readings(ctx, q, ModeRaw)
}

func (s *Service) Accumulated(ctx context.Context, r RangeRequest) (Series, error) {
	q, err := s.rangeQuery(r)
	if err != nil {
		return Series{}, err
	}
	return s.readings(ctx, q, ModeClientAccumulated)
}

// Total returns the last accumulated point of the range
func (s *Service) Total(ctx context.Context, r RangeRequest) (Total, error) {
	q, err := s.rangeQuery(r)
	if err != nil {
		return Total{}, err
	}
	series, err := s.readings(ctx, q, ModeServerAccumulated)
	if err != nil {
		return Total{}, err
	}
	total := Total{TimePeriod: series.TimePeriod}
	if n := len(series.Readings); n > 0 {
		total.Total = &series.Readings[n-1]
	}
	return total, nil
}

func (s *Service) Daily(ctx context.Context, r SpanRequest) (Series, error) {
	q, err := s.spanQuery(r)
	if err != nil {
		return Series{}, err
	}
	return s.readings(ctx, q, ModeRaw)
}

func (s *Service) DailyAccumulated(ctx context.Context, r SpanRequest) (Series, error) {
	q, err := s.spanQuery(r)
	if err != nil {
		return Series{}, err
	}
	return s.readings(ctx, q, ModeServerAccumulated)
}

// Latest returns the last reading of every device, userID may be empty
func (s *Service) Latest(ctx context.Context, userID string) ([]Latest, error) {
	if userID != "" {
		if err := ValidateUserID(userID); err != nil {
			return nil, err
		}
	}
	latest, err := s.backend.Latest(ctx, LatestQuery{
		UserID: userID,
		Window: s.conf.LatestWindow,
		Stop:   s.Now(),
	})
	if err != nil {
		return nil, err
	}
	if latest == nil {
		latest = []Latest{}
	}
	return latest, nil
}

func (s *Service) readings(ctx context.Context, q Query, mode Mode) (Series, error) {
	var f Folder
	switch mode {
	case ModeRaw:
		f = NewReshaper(s.conf.Absent)
	case ModeClientAccumulated:
		f = NewAccumulator(s.conf.Absent)
	case ModeServerAccumulated:
		if s.backend.ServerAccumulation() {
			q.Accumulate = true
			f = NewReshaper(s.conf.Absent)
		} else {
			f = NewAccumulator(s.conf.Absent)
		}
	}

	src, err := s.backend.Readings(ctx, q)
	if err != nil {
		return Series{}, err
	}
	return Collect(src, f)
}

func (s *Service) user(id string) (string, error) {
	if id == "" {
		id = s.conf.DefaultUser
	}
	if err := ValidateUserID(id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) rangeQuery(r RangeRequest) (Query, error) {
	if r.Hours <= 0 || r.Hours > MaxRangeHours {
		return Query{}, ErrInvalidRange
	}
	user, err := s.user(r.UserID)
	if err != nil {
		return Query{}, err
	}
	stop := s.Now().Truncate(time.Second)
	return Query{
		UserID: user,
		Start:  stop.Add(-time.Duration(r.Hours) * time.Hour),
		Stop:   stop,
		Every:  time.Duration(r.Hours) * s.conf.StepPerHour,
	}, nil
}

func (s *Service) spanQuery(r SpanRequest) (Query, error) {
	if r.UserID == "" {
		return Query{}, ErrInvalidUser
	}
	if err := ValidateUserID(r.UserID); err != nil {
		return Query{}, err
	}
	if r.Start <= 0 || r.Stop <= r.Start {
		return Query{}, ErrInvalidSpan
	}
	return Query{
		UserID: r.UserID,
		Start:  time.Unix(r.Start, 0),
		Stop:   time.Unix(r.Stop, 0),
		Every:  s.conf.DailyStep,
	}, nil
}
