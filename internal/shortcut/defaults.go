package shortcut

var (
	// DefaultGlobal is the factory show/hide toggle.
	DefaultGlobal = New(KeySpace, Option)

	// SandboxFallback is registered next to DefaultGlobal while running in a
	// development sandbox, whose host claims Option+Space for itself.
	SandboxFallback = New(KeySpace, Control|Option)

	// Terminate is the kill-switch combination checked before every other
	// focused shortcut.
	Terminate = New(KeyQ, Control|Command|Shift)
)
