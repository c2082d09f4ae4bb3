package tui

import (
	"github.com/foliodash/folio/internal/api"
	"github.com/foliodash/folio/internal/chart"
)

// Fetch results carry the generation that issued them so responses that
// arrive after a newer request has started are dropped instead of
// overwriting fresher state.

type tableTickMsg struct {
	id string
}

type tableDataMsg struct {
	id   string
	gen  int
	rows []api.Row
}

type tableErrMsg struct {
	id  string
	gen int
	err error
}

type historyTickMsg struct{}

type historyDebounceMsg struct {
	gen int
}

type historyDataMsg struct {
	gen       int
	timeframe chart.Timeframe
	points    []api.HistoryPoint
}

type historyErrMsg struct {
	gen int
	err error
}

type diversityTickMsg struct{}

type diversityDataMsg struct {
	gen      int
	holdings []api.Holding
}

type diversityErrMsg struct {
	gen int
	err error
}

type syncDoneMsg struct {
	message string
	err     error
}
