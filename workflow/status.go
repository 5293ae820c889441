package workflow

// Workflow statuses. Two pipelines share the table: NCR (quality complaint,
// mandatory hub inspection) and COL (logistics collection, skips inspection).
// The generic names at the bottom are kept for records created before the
// pipelines were split.
const (
	StatusRequested       = "Requested"
	StatusPickupScheduled = "PickupScheduled"
	StatusCompleted       = "Completed"

	StatusNCRInTransit   = "NCR_InTransit"
	StatusNCRHubReceived = "NCR_HubReceived"
	StatusNCRQCCompleted = "NCR_QCCompleted"
	StatusNCRDocumented  = "NCR_Documented"

	StatusCOLJobAccepted    = "COL_JobAccepted"
	StatusCOLBranchReceived = "COL_BranchReceived"
	StatusCOLConsolidated   = "COL_Consolidated"
	StatusCOLInTransit      = "COL_InTransit"
	StatusCOLHubReceived    = "COL_HubReceived"
	StatusCOLDocumented     = "COL_Documented"

	StatusDirectReturn     = "DirectReturn"
	StatusReturnToSupplier = "ReturnToSupplier"

	// Legacy pipeline
	StatusJobAccepted       = "JobAccepted"
	StatusBranchReceived    = "BranchReceived"
	StatusReadyForLogistics = "ReadyForLogistics"
	StatusInTransitToHub    = "InTransitToHub"
	StatusHubReceived       = "HubReceived"
	StatusDocsCompleted     = "DocsCompleted"
)

// ValidTransitions maps a status to the set of statuses it may move to.
// Status updates that are not in this table are rejected by the store.
var ValidTransitions = map[string][]string{
	// NCR flow. Field settlement closes a case on site, so DirectReturn is
	// reachable from the intake statuses as well as from transit.
	StatusRequested:      {StatusNCRInTransit, StatusPickupScheduled, StatusJobAccepted, StatusCOLJobAccepted, StatusDirectReturn},
	StatusNCRInTransit:   {StatusNCRHubReceived, StatusDirectReturn},
	StatusNCRHubReceived: {StatusNCRQCCompleted},
	StatusNCRQCCompleted: {StatusNCRDocumented},
	StatusNCRDocumented:  {StatusCompleted},

	// Collection flow
	StatusCOLJobAccepted:    {StatusCOLBranchReceived, StatusDirectReturn},
	StatusCOLBranchReceived: {StatusCOLConsolidated},
	StatusCOLConsolidated:   {StatusCOLInTransit, StatusDirectReturn},
	StatusCOLInTransit:      {StatusCOLHubReceived},
	StatusCOLHubReceived:    {StatusCOLDocumented},
	StatusCOLDocumented:     {StatusCompleted},

	// Direct returns
	StatusDirectReturn:     {StatusCompleted},
	StatusReturnToSupplier: {StatusCompleted},

	// Legacy / fallback
	StatusJobAccepted:       {StatusBranchReceived},
	StatusBranchReceived:    {StatusReadyForLogistics},
	StatusReadyForLogistics: {StatusInTransitToHub, StatusReturnToSupplier},
	StatusInTransitToHub:    {StatusHubReceived},
	StatusHubReceived:       {StatusDocsCompleted},
	StatusDocsCompleted:     {StatusCompleted},
}

// CanTransition reports whether next is reachable from current. A status
// with no table entry (terminal or unknown) can go nowhere.
func CanTransition(current, next string) bool {
	allowed, ok := ValidTransitions[current]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == next {
			return true
		}
	}
	return false
}

// AllowedNext returns the permitted successor statuses of current, nil when
// there are none.
func AllowedNext(current string) []string {
	return ValidTransitions[current]
}
