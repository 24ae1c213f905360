package events

import "time"

const StageCompletedTopic = "pipeline:stage:completed"

type StageCompleted struct {
	Stage    string
	Duration time.Duration
}

const RunFinishedTopic = "pipeline:run:finished"

type RunFinished struct {
	ExitPoint int
	Message   string
}
