package api

import (
	"net/url"
	"strconv"

	"github.com/martin2250/scaleapi/scales"
)

func parseRange(v url.Values) (scales.RangeRequest, error) {
	hours, err := strconv.Atoi(v.Get("range"))
	if err != nil {
		return scales.RangeRequest{}, scales.ErrInvalidRange
	}
	return scales.RangeRequest{
		Hours:  hours,
		UserID: v.Get("user_id"),
	}, nil
}

func parseSpan(v url.Values) (scales.SpanRequest, error) {
	start, err := strconv.ParseInt(v.Get("start"), 10, 64)
	if err != nil {
		return scales.SpanRequest{}, scales.ErrInvalidSpan
	}
	stop, err := strconv.ParseInt(v.Get("stop"), 10, 64)
	if err != nil {
		return scales.SpanRequest{}, scales.ErrInvalidSpan
	}
	return scales.SpanRequest{
		Start:  start,
		Stop:   stop,
		UserID: v.Get("user_id"),
	}, nil
}
