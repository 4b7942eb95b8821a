package domain

var (
	MessageSuccessSendDigest = "expiry digest processed"
	MessageFailedSendDigest  = "failed to send expiry digest"
)

type (
	DigestResponse struct {
		Sent         bool `json:"sent"`
		Expired      int  `json:"expired"`
		ExpiringSoon int  `json:"expiring_soon"`
	}
)
