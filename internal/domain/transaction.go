package domain

import "fmt"

type TxType string

const (
	TxInitiationRite       TxType = "initiation_rite"
	TxTaskRequest          TxType = "task_request"
	TxTaskAcceptance       TxType = "task_acceptance"
	TxTaskRefusal          TxType = "task_refusal"
	TxTaskCompletion       TxType = "task_completion"
	TxVerificationResponse TxType = "verification_response"
)

// ActionRequest submits a new task request; it applies to no existing task.
const ActionRequest Action = "request"

type txShape struct {
	field      string
	memoPrefix string
}

var txShapes = map[TxType]txShape{
	TxInitiationRite:       {field: "initiation_rite"},
	TxTaskRequest:          {field: "request", memoPrefix: "REQUEST_POST_FIAT ___ "},
	TxTaskAcceptance:       {field: "message", memoPrefix: "ACCEPTANCE REASON ___ "},
	TxTaskRefusal:          {field: "refusal_reason", memoPrefix: "REFUSAL REASON ___ "},
	TxTaskCompletion:       {field: "completion_justification", memoPrefix: "COMPLETION JUSTIFICATION ___ "},
	TxVerificationResponse: {field: "verification_response", memoPrefix: "VERIFICATION RESPONSE ___ "},
}

var actionTxTypes = map[Action]TxType{
	ActionRequest:                 TxTaskRequest,
	ActionAccept:                  TxTaskAcceptance,
	ActionRefuse:                  TxTaskRefusal,
	ActionSubmitVerification:      TxTaskCompletion,
	ActionSubmitFinalVerification: TxVerificationResponse,
}

func TxTypeForAction(action Action) (TxType, error) {
	txType, ok := actionTxTypes[action]
	if !ok {
		return "", fmt.Errorf("no transaction for action %q", action)
	}

	return txType, nil
}

// TextField is the data key carrying the user's text for this tx type.
func (t TxType) TextField() string {
	return txShapes[t].field
}

// Memo is the ledger memo the backend writes for text.
func (t TxType) Memo(text string) string {
	return txShapes[t].memoPrefix + text
}

// TransactionRequest is a signed action submitted through /transaction/send.
type TransactionRequest struct {
	Account Address
	Type    TxType
	Secret  Secret
	Data    map[string]string
}

// NewTaskTransaction builds the request for a task action. username and
// taskID are carried in data alongside the action's text.
func NewTaskTransaction(account Address, username string, txType TxType, taskID TaskID, text string, secret Secret) TransactionRequest {
	return TransactionRequest{
		Account: account,
		Type:    txType,
		Secret:  secret,
		Data: map[string]string{
			txType.TextField(): text,
			"task_id":          string(taskID),
			"username":         username,
		},
	}
}

func NewInitiationRite(account Address, username, rite string, secret Secret) TransactionRequest {
	return TransactionRequest{
		Account: account,
		Type:    TxInitiationRite,
		Secret:  secret,
		Data: map[string]string{
			TxInitiationRite.TextField(): rite,
			"username":                   username,
		},
	}
}
