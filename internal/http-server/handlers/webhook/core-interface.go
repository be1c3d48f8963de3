package webhook

// Core processes a decoded Chatwoot webhook payload: classification and
// notification routing happen behind this interface.
type Core interface {
	ProcessWebhook(payload map[string]interface{})
}
