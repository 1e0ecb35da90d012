package domain

// Stage is a state of the tournament state machine. Stages are strictly
// ordered and a session only ever moves to the immediate successor of its
// current stage; there is no retry and no rollback.
type Stage int

// Tournament stages in protocol order.
const (
	// StageInit is the stage of a freshly created session.
	StageInit Stage = iota
	// StageQualifying covers all qualification rounds.
	StageQualifying
	// StageQualificationComplete is entered after the last qualification round.
	StageQualificationComplete
	// StageFinalistsSelected is entered once the finalists are fixed.
	StageFinalistsSelected
	// StageFinale covers all finale rounds.
	StageFinale
	// StageFinaleComplete is entered once final scores are combined.
	StageFinaleComplete
	// StageWinnerDeclared is entered once the podium is ranked.
	StageWinnerDeclared
	// StagePersisted is terminal. It is reached after the result record was
	// handed to the result store, whether or not the store succeeded.
	StagePersisted
)

var stageNames = [...]string{
	StageInit:                  "INIT",
	StageQualifying:            "QUALIFYING",
	StageQualificationComplete: "QUALIFICATION_COMPLETE",
	StageFinalistsSelected:     "FINALISTS_SELECTED",
	StageFinale:                "FINALE",
	StageFinaleComplete:        "FINALE_COMPLETE",
	StageWinnerDeclared:        "WINNER_DECLARED",
	StagePersisted:             "PERSISTED",
}

// String returns the protocol name of the stage.
func (s Stage) String() string {
	if s < StageInit || s > StagePersisted {
		return "UNKNOWN"
	}
	return stageNames[s]
}

// Next returns the stage that follows s. The terminal stage is its own
// successor.
func (s Stage) Next() Stage {
	if s >= StagePersisted {
		return StagePersisted
	}
	return s + 1
}

// Terminal reports whether no further transition is possible.
func (s Stage) Terminal() bool { return s == StagePersisted }
