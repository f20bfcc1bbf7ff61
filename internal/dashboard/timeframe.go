package dashboard

import (
	"fmt"

	"stockdash/pkg/stocksapi"
)

// TimeFrame is one of the four fixed lookback windows.
type TimeFrame string

const (
	OneMonth    TimeFrame = stocksapi.TimeFrame1Month
	ThreeMonths TimeFrame = stocksapi.TimeFrame3Months
	OneYear     TimeFrame = stocksapi.TimeFrame1Year
	FiveYears   TimeFrame = stocksapi.TimeFrame5Years
)

// DefaultTimeFrame is selected on startup.
const DefaultTimeFrame = FiveYears

var timeFrames = [...]TimeFrame{OneMonth, ThreeMonths, OneYear, FiveYears}

// TimeFrames returns the control's buttons in display order.
func TimeFrames() []TimeFrame {
	return timeFrames[:]
}

// ParseTimeFrame validates a time-frame label.
func ParseTimeFrame(s string) (TimeFrame, error) {
	for _, tf := range timeFrames {
		if string(tf) == s {
			return tf, nil
		}
	}
	return "", fmt.Errorf("unknown time frame %q", s)
}

func (tf TimeFrame) String() string { return string(tf) }

// Request is a trigger for one fetch-and-render cycle.
type Request struct {
	Symbol    string
	TimeFrame TimeFrame
}

// TimeFrameRequest is the action bound to button i: the current symbol at
// that button's frame. It reports false for an index outside the bar.
func TimeFrameRequest(i int, currentSymbol string) (Request, bool) {
	if i < 0 || i >= len(timeFrames) {
		return Request{}, false
	}
	return Request{Symbol: currentSymbol, TimeFrame: timeFrames[i]}, true
}
