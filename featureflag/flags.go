package featureflag

type Flag string

const (
	FlagDisableTriggerCallbacks Flag = "DISABLE_TRIGGER_CALLBACKS"
	FlagDisableRingEnforcement  Flag = "DISABLE_RING_ENFORCEMENT"
	FlagDisableMeshSpawn        Flag = "DISABLE_MESH_SPAWN"
	FlagRaceAllCars             Flag = "RACE_ALL_CARS"
)
