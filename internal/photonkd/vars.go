package photonkd

import "go.uber.org/zap"

var (
	Debug    = false // set to true for verbose debug output and tree validation
	DumpTree = false // set to true to print the tree after every build
	// Logger receives all library output; main replaces it.
	Logger = zap.NewNop().Sugar()
)
