package notifications

import "github.com/Josepharis/siparis/internal/domain"

type Result string

const (
	ResultSent    Result = "sent"
	ResultSkipped Result = "skipped"
	ResultFailed  Result = "failed"
)

// SkipReason says why a handler run ended without dispatching.
type SkipReason string

const (
	ReasonMissingCompany   SkipReason = "missing_producer_company"
	ReasonNoProducers      SkipReason = "no_producers"
	ReasonNoProducerTokens SkipReason = "no_producer_tokens"
	ReasonStatusUnchanged  SkipReason = "status_unchanged"
	ReasonUnknownStatus    SkipReason = "unknown_status"
	ReasonWaitingStatus    SkipReason = "waiting_status"
	ReasonCustomerNotFound SkipReason = "customer_not_found"
	ReasonNoDeviceToken    SkipReason = "no_device_token"
	ReasonNoContent        SkipReason = "no_content"
)

// Outcome is the result of one dispatcher run.
type Outcome struct {
	Result     Result
	Reason     SkipReason
	MessageID  string
	Recipients int
	Batch      domain.BatchResult
	Err        error
}

func skipped(reason SkipReason) Outcome {
	return Outcome{Result: ResultSkipped, Reason: reason}
}

func failed(err error) Outcome {
	return Outcome{Result: ResultFailed, Err: err}
}

func (o Outcome) Sent() bool {
	return o.Result == ResultSent
}
