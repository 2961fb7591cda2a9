package inquiry

import "portal-backend/internal/models"

// transitions is the explicit stage table. The portal deliberately rejects
// out-of-order moves (e.g. Engineering straight to Accepted): an inquiry must
// clear engineering review before planning can accept or reject it.
var transitions = map[models.InquiryStatus][]models.InquiryStatus{
	models.StatusEngineering: {models.StatusPlanning, models.StatusRejected},
	models.StatusPlanning:    {models.StatusAccepted, models.StatusRejected},
}

// CanTransition reports whether an inquiry may move from one stage to the
// other. Accepted and Rejected are terminal.
func CanTransition(from, to models.InquiryStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further stage changes are possible.
func Terminal(s models.InquiryStatus) bool {
	return len(transitions[s]) == 0
}

// InProgress reports whether an inquiry still awaits a final decision.
func InProgress(s models.InquiryStatus) bool {
	return s != models.StatusAccepted && s != models.StatusRejected
}
