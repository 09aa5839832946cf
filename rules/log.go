package rules

import "log/slog"

// Slog wraps a Production as a slog.LogValuer so it is only rendered when
// the record is actually written
func Slog(p *Production) slog.LogValuer {
	return productionLogValuer{p}
}

type productionLogValuer struct{ *Production }

func (l productionLogValuer) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("production", l.Production.String()),
		slog.String("combinator", l.Combinator.String()),
	)
}
