package photonkd

// Real is the scalar type used by the cost model and the driver.
type Real = float64

// Build defaults. Zero-valued Options fields fall back to these.
const (
	MaxDepth           = 16
	MaxPointsPerLeaf   = 16
	IsectCost          = 80  // SAH cost of testing one point
	TraversalCost      = 1   // SAH cost of one interior step
	EmptyBonus         = 0.5 // discount when one side of a split is empty
	MembershipCapacity = 50  // inline live-node slots per point before spilling
	CubeRadiusFactor   = 10  // bounds thinner than this * max radius are cubed
	MinSideFraction    = 1e-4
	NumShards          = 1024 // leaf collector locks, power of two
	arenaSizeLimit     = 1 << 20
)

// Driver defaults, applied by loadConfig.
const (
	Iterations          = 8
	PhotonsPerIteration = 200_000
	VisiblePoints       = 100_000
	InitialRadius       = 0.05
	Alpha               = 2.0 / 3.0
	ProgressSteps       = 10
)
