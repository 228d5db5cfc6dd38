package domain

type PeriodMetrics struct {
	Period                string
	Range                 DateRange
	BriefsCreated         int64
	BriefsCompleted       int64
	AvgTurnaroundDays     float64
	OnTimeDeliveryRate    int
	TotalHours            float64
	BillableHours         float64
	ClientSatisfactionAvg float64
	RevisionRate          Metric
}

type PeriodChanges struct {
	BriefsCreated         int64
	BriefsCompleted       int64
	AvgTurnaroundDays     float64
	OnTimeDeliveryRate    int
	TotalHours            float64
	BillableHours         float64
	ClientSatisfactionAvg float64
	RevisionRate          Metric
}

type PeriodComparison struct {
	CurrentPeriod  PeriodMetrics
	PreviousPeriod PeriodMetrics
	Changes        PeriodChanges
}
