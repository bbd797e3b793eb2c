package notify

// Option applies a configuration option to the SESNotifier.
type Option func(*SESNotifier)

// WithRegion pins the AWS region instead of relying on the SDK's default
// resolution.
func WithRegion(region string) Option {
	return func(n *SESNotifier) {
		if region != "" {
			n.region = region
		}
	}
}

// WithClient injects a prebuilt SES client. Mainly used by tests.
func WithClient(client EmailSender) Option {
	return func(n *SESNotifier) {
		if client != nil {
			n.client = client
		}
	}
}
