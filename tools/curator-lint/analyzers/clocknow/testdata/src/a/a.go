package a

import "time"

type service struct {
	now func() time.Time
}

func bad() string {
	return time.Now().Format("2006-01-02") // want "time.Now called directly"
}

func badField(s *service) time.Time {
	s.now = nil
	return time.Now() // want "time.Now called directly"
}

func good() *service {
	return &service{now: time.Now}
}

func goodCall(s *service) time.Time {
	return s.now()
}
