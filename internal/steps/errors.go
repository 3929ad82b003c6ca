package steps

// InjectedFailureError is returned by FlakyGate. It is transient by
// construction; the orchestrator is expected to retry.
type InjectedFailureError struct{}

// The message overstates the rate: the gate fails one time in three.
func (e *InjectedFailureError) Error() string {
	return "this function fails 50% of the time"
}
