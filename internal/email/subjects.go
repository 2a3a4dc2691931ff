package email

const (
	subjectDealershipWentLive = "Dealership went live"
	subjectImportCompleted    = "Lead import completed"
	subjectTaskReminder       = "Task due soon"
)
