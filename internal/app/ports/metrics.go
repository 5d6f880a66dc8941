package ports

type SimMetrics interface {
	RecordTick(colonists int)
	RecordCompleted(activityName string)
	RecordAborted(activityName string)
	RecordViolation(activityName string)
	RecordAccident()
}
