package domain

// BlockType classifies one scheduled unit within a day.
type BlockType string

const (
	BlockArrival BlockType = "arrival"
	BlockSpot    BlockType = "spot"
	BlockMeal    BlockType = "meal"
	BlockHotel   BlockType = "hotel"
	BlockMove    BlockType = "move"
	BlockFree    BlockType = "free"
)

// ValidBlockTypes is the canonical set of accepted block type strings.
var ValidBlockTypes = map[BlockType]bool{
	BlockArrival: true, BlockSpot: true, BlockMeal: true,
	BlockHotel: true, BlockMove: true, BlockFree: true,
}

// Source tags where a block's content came from. Purely informational:
// it never affects scheduling logic.
type Source string

const (
	SourceUser Source = "user"
	SourceAI   Source = "ai"
)

// OptionLabel identifies one of the two recommendation options.
type OptionLabel string

const (
	OptionA OptionLabel = "A"
	OptionB OptionLabel = "B"
)

// MealType tags meal blocks.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// ValidMealTypes is the canonical set of accepted meal type strings.
var ValidMealTypes = map[MealType]bool{
	MealBreakfast: true, MealLunch: true, MealDinner: true, MealSnack: true,
}

// Pace controls how densely blocks are packed into a day.
type Pace string

const (
	PacePacked  Pace = "packed"
	PaceNormal  Pace = "normal"
	PaceRelaxed Pace = "relaxed"
)

// ValidPaces is the canonical set of accepted pace strings.
var ValidPaces = map[Pace]bool{
	PacePacked: true, PaceNormal: true, PaceRelaxed: true,
}

// TransportMode is the trip-wide transport assumption.
type TransportMode string

const (
	TransportDrive   TransportMode = "drive"
	TransportTransit TransportMode = "transit"
)

// ValidTransportModes is the canonical set of accepted transport strings.
var ValidTransportModes = map[TransportMode]bool{
	TransportDrive: true, TransportTransit: true,
}
