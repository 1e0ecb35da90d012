package ports

// Metric names shared by the components that record metrics and the
// collectors that export them.
const (
	// MetricTurnLatency is the latency operation name of one contestant turn.
	MetricTurnLatency = "score_turn"
	// MetricTurnsTotal counts contestant turns by category and status.
	MetricTurnsTotal = "arena_turns_total"
	// MetricTurnScore is the histogram of scores returned by the generator.
	MetricTurnScore = "arena_turn_score"
	// MetricRoundsTotal counts committed rounds by phase.
	MetricRoundsTotal = "arena_rounds_total"
	// MetricTournamentsTotal counts finished tournaments by persistence
	// status.
	MetricTournamentsTotal = "arena_tournaments_total"
	// MetricStage is the gauge of the current stage ordinal.
	MetricStage = "arena_stage"
	// MetricLeaderScore is the gauge of the current leader's score by phase.
	MetricLeaderScore = "arena_leader_score"
)
