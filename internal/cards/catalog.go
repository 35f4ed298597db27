// Package cards holds the static card catalog and property color tables for
// the property-trading card game. The catalog is built once at init and never
// mutated; game state refers to cards exclusively by id.
package cards

import (
	"fmt"
	"math/rand/v2"
)

// Kind classifies a card's printed type.
type Kind int

const (
	KindProperty Kind = iota
	KindMoney
	KindAction
	KindRent
	KindHouse
	KindHotel
)

var kindNames = map[Kind]string{
	KindProperty: "PROPERTY",
	KindMoney:    "MONEY",
	KindAction:   "ACTION",
	KindRent:     "RENT",
	KindHouse:    "HOUSE",
	KindHotel:    "HOTEL",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND_%d", int(k))
}

// Color identifies a property color group.
type Color string

const (
	ColorBrown     Color = "brown"
	ColorLightBlue Color = "lightblue"
	ColorPink      Color = "pink"
	ColorOrange    Color = "orange"
	ColorRed       Color = "red"
	ColorYellow    Color = "yellow"
	ColorGreen     Color = "green"
	ColorDarkBlue  Color = "darkblue"
	ColorUtility   Color = "utility"
	ColorRailroad  Color = "railroad"
)

// Action card names. Behavior dispatch in the engine keys off these.
const (
	NameDealBreaker   = "Deal Breaker"
	NameSlyDeal       = "Sly Deal"
	NameForcedDeal    = "Forced Deal"
	NameDebtCollector = "Debt Collector"
	NameBirthday      = "It's My Birthday"
	NamePassGo        = "Pass Go"
	NameJustSayNo     = "Just Say No!"
	NameRent          = "Rent"
	NameWildRent      = "Wild Rent"
)

// Fixed rule-set constants.
const (
	DrawPerTurn         = 2
	PlaysPerTurn        = 3
	HandLimit           = 7
	InitialHandSize     = 5
	MaxPlayers          = 5
	WinThreshold        = 3
	DebtCollectorAmount = 5
	BirthdayAmount      = 2
	HouseRentBonus      = 3
	HotelRentBonus      = 5
	MaxHousesPerSet     = 4
)

// Card is the immutable identity of a single physical card.
// A property card has either a fixed Color or a non-empty Colors list
// (a wildcard), never neither. Rent cards use Colors for the colors they
// can charge; an empty Colors list on a rent card means any color.
type Card struct {
	ID     string
	Kind   Kind
	Name   string
	Value  int
	Color  Color
	Colors []Color
}

// IsWildcard reports whether a property card can be assigned to a choice
// of colors.
func (c Card) IsWildcard() bool {
	return c.Kind == KindProperty && len(c.Colors) > 0
}

// EligibleColor reports whether the card may be played as the given color.
func (c Card) EligibleColor(color Color) bool {
	if c.Color == color {
		return true
	}
	for _, eligible := range c.Colors {
		if eligible == color {
			return true
		}
	}
	return false
}

// ColorInfo describes one property color group.
type ColorInfo struct {
	DisplayName string
	SetSize     int
	// RentBySetCount[i] is the rent charged when the owner holds i+1
	// properties of this color. Length always equals SetSize.
	RentBySetCount []int
}

var propertyColors = map[Color]ColorInfo{
	ColorBrown:     {DisplayName: "Brown", SetSize: 2, RentBySetCount: []int{1, 2}},
	ColorLightBlue: {DisplayName: "Light Blue", SetSize: 3, RentBySetCount: []int{1, 2, 3}},
	ColorPink:      {DisplayName: "Pink", SetSize: 3, RentBySetCount: []int{1, 2, 4}},
	ColorOrange:    {DisplayName: "Orange", SetSize: 3, RentBySetCount: []int{1, 3, 5}},
	ColorRed:       {DisplayName: "Red", SetSize: 3, RentBySetCount: []int{2, 3, 6}},
	ColorYellow:    {DisplayName: "Yellow", SetSize: 3, RentBySetCount: []int{2, 4, 6}},
	ColorGreen:     {DisplayName: "Green", SetSize: 3, RentBySetCount: []int{2, 4, 7}},
	ColorDarkBlue:  {DisplayName: "Dark Blue", SetSize: 2, RentBySetCount: []int{3, 8}},
	ColorUtility:   {DisplayName: "Utility", SetSize: 2, RentBySetCount: []int{1, 2}},
	ColorRailroad:  {DisplayName: "Railroad", SetSize: 4, RentBySetCount: []int{1, 2, 3, 4}},
}

// Info returns the color table entry for a color.
func Info(color Color) (ColorInfo, bool) {
	info, ok := propertyColors[color]
	return info, ok
}

// SetSize returns the number of properties needed to complete a color's
// set, or 0 for an unknown color.
func SetSize(color Color) int {
	return propertyColors[color].SetSize
}

// Colors returns every color in the reference set.
func Colors() []Color {
	out := make([]Color, 0, len(propertyColors))
	for color := range propertyColors {
		out = append(out, color)
	}
	return out
}

var catalog = []Card{
	// Property cards
	{ID: "prop_brown_1", Kind: KindProperty, Name: "Mediterranean Avenue", Color: ColorBrown, Value: 1},
	{ID: "prop_brown_2", Kind: KindProperty, Name: "Baltic Avenue", Color: ColorBrown, Value: 1},

	{ID: "prop_lightblue_1", Kind: KindProperty, Name: "Oriental Avenue", Color: ColorLightBlue, Value: 1},
	{ID: "prop_lightblue_2", Kind: KindProperty, Name: "Vermont Avenue", Color: ColorLightBlue, Value: 1},
	{ID: "prop_lightblue_3", Kind: KindProperty, Name: "Connecticut Avenue", Color: ColorLightBlue, Value: 1},

	{ID: "prop_pink_1", Kind: KindProperty, Name: "St. Charles Place", Color: ColorPink, Value: 2},
	{ID: "prop_pink_2", Kind: KindProperty, Name: "States Avenue", Color: ColorPink, Value: 2},
	{ID: "prop_pink_3", Kind: KindProperty, Name: "Virginia Avenue", Color: ColorPink, Value: 2},

	{ID: "prop_orange_1", Kind: KindProperty, Name: "St. James Place", Color: ColorOrange, Value: 2},
	{ID: "prop_orange_2", Kind: KindProperty, Name: "Tennessee Avenue", Color: ColorOrange, Value: 2},
	{ID: "prop_orange_3", Kind: KindProperty, Name: "New York Avenue", Color: ColorOrange, Value: 2},

	{ID: "prop_red_1", Kind: KindProperty, Name: "Kentucky Avenue", Color: ColorRed, Value: 3},
	{ID: "prop_red_2", Kind: KindProperty, Name: "Indiana Avenue", Color: ColorRed, Value: 3},
	{ID: "prop_red_3", Kind: KindProperty, Name: "Illinois Avenue", Color: ColorRed, Value: 3},

	{ID: "prop_yellow_1", Kind: KindProperty, Name: "Atlantic Avenue", Color: ColorYellow, Value: 3},
	{ID: "prop_yellow_2", Kind: KindProperty, Name: "Ventnor Avenue", Color: ColorYellow, Value: 3},
	{ID: "prop_yellow_3", Kind: KindProperty, Name: "Marvin Gardens", Color: ColorYellow, Value: 3},

	{ID: "prop_green_1", Kind: KindProperty, Name: "Pacific Avenue", Color: ColorGreen, Value: 4},
	{ID: "prop_green_2", Kind: KindProperty, Name: "North Carolina Avenue", Color: ColorGreen, Value: 4},
	{ID: "prop_green_3", Kind: KindProperty, Name: "Pennsylvania Avenue", Color: ColorGreen, Value: 4},

	{ID: "prop_darkblue_1", Kind: KindProperty, Name: "Park Place", Color: ColorDarkBlue, Value: 4},
	{ID: "prop_darkblue_2", Kind: KindProperty, Name: "Boardwalk", Color: ColorDarkBlue, Value: 4},

	{ID: "prop_railroad_1", Kind: KindProperty, Name: "Reading Railroad", Color: ColorRailroad, Value: 2},
	{ID: "prop_railroad_2", Kind: KindProperty, Name: "Pennsylvania Railroad", Color: ColorRailroad, Value: 2},
	{ID: "prop_railroad_3", Kind: KindProperty, Name: "B&O Railroad", Color: ColorRailroad, Value: 2},
	{ID: "prop_railroad_4", Kind: KindProperty, Name: "Short Line", Color: ColorRailroad, Value: 2},

	{ID: "prop_utility_1", Kind: KindProperty, Name: "Electric Company", Color: ColorUtility, Value: 2},
	{ID: "prop_utility_2", Kind: KindProperty, Name: "Water Works", Color: ColorUtility, Value: 2},

	// Property wildcards
	{ID: "wildcard_1", Kind: KindProperty, Name: "Property Wildcard", Colors: []Color{ColorBrown, ColorLightBlue}, Value: 1},
	{ID: "wildcard_2", Kind: KindProperty, Name: "Property Wildcard", Colors: []Color{ColorPink, ColorOrange}, Value: 2},
	{ID: "wildcard_3", Kind: KindProperty, Name: "Property Wildcard", Colors: []Color{ColorRed, ColorYellow}, Value: 3},
	{ID: "wildcard_4", Kind: KindProperty, Name: "Property Wildcard", Colors: []Color{ColorGreen, ColorDarkBlue}, Value: 4},
	{ID: "wildcard_5", Kind: KindProperty, Name: "Property Wildcard", Colors: []Color{ColorRailroad, ColorUtility}, Value: 2},

	// Money cards
	{ID: "money_1m_1", Kind: KindMoney, Name: "1M", Value: 1},
	{ID: "money_1m_2", Kind: KindMoney, Name: "1M", Value: 1},
	{ID: "money_1m_3", Kind: KindMoney, Name: "1M", Value: 1},
	{ID: "money_1m_4", Kind: KindMoney, Name: "1M", Value: 1},
	{ID: "money_1m_5", Kind: KindMoney, Name: "1M", Value: 1},
	{ID: "money_1m_6", Kind: KindMoney, Name: "1M", Value: 1},

	{ID: "money_2m_1", Kind: KindMoney, Name: "2M", Value: 2},
	{ID: "money_2m_2", Kind: KindMoney, Name: "2M", Value: 2},
	{ID: "money_2m_3", Kind: KindMoney, Name: "2M", Value: 2},
	{ID: "money_2m_4", Kind: KindMoney, Name: "2M", Value: 2},
	{ID: "money_2m_5", Kind: KindMoney, Name: "2M", Value: 2},

	{ID: "money_3m_1", Kind: KindMoney, Name: "3M", Value: 3},
	{ID: "money_3m_2", Kind: KindMoney, Name: "3M", Value: 3},
	{ID: "money_3m_3", Kind: KindMoney, Name: "3M", Value: 3},

	{ID: "money_4m_1", Kind: KindMoney, Name: "4M", Value: 4},
	{ID: "money_4m_2", Kind: KindMoney, Name: "4M", Value: 4},
	{ID: "money_4m_3", Kind: KindMoney, Name: "4M", Value: 4},

	{ID: "money_5m_1", Kind: KindMoney, Name: "5M", Value: 5},
	{ID: "money_5m_2", Kind: KindMoney, Name: "5M", Value: 5},

	{ID: "money_10m_1", Kind: KindMoney, Name: "10M", Value: 10},

	// Action cards
	{ID: "deal_breaker_1", Kind: KindAction, Name: NameDealBreaker, Value: 5},
	{ID: "deal_breaker_2", Kind: KindAction, Name: NameDealBreaker, Value: 5},

	{ID: "sly_deal_1", Kind: KindAction, Name: NameSlyDeal, Value: 3},
	{ID: "sly_deal_2", Kind: KindAction, Name: NameSlyDeal, Value: 3},
	{ID: "sly_deal_3", Kind: KindAction, Name: NameSlyDeal, Value: 3},

	{ID: "forced_deal_1", Kind: KindAction, Name: NameForcedDeal, Value: 3},
	{ID: "forced_deal_2", Kind: KindAction, Name: NameForcedDeal, Value: 3},
	{ID: "forced_deal_3", Kind: KindAction, Name: NameForcedDeal, Value: 3},

	{ID: "debt_collector_1", Kind: KindAction, Name: NameDebtCollector, Value: 3},
	{ID: "debt_collector_2", Kind: KindAction, Name: NameDebtCollector, Value: 3},
	{ID: "debt_collector_3", Kind: KindAction, Name: NameDebtCollector, Value: 3},

	{ID: "birthday_1", Kind: KindAction, Name: NameBirthday, Value: 2},
	{ID: "birthday_2", Kind: KindAction, Name: NameBirthday, Value: 2},
	{ID: "birthday_3", Kind: KindAction, Name: NameBirthday, Value: 2},

	{ID: "pass_go_1", Kind: KindAction, Name: NamePassGo, Value: 1},
	{ID: "pass_go_2", Kind: KindAction, Name: NamePassGo, Value: 1},
	{ID: "pass_go_3", Kind: KindAction, Name: NamePassGo, Value: 1},
	{ID: "pass_go_4", Kind: KindAction, Name: NamePassGo, Value: 1},
	{ID: "pass_go_5", Kind: KindAction, Name: NamePassGo, Value: 1},
	{ID: "pass_go_6", Kind: KindAction, Name: NamePassGo, Value: 1},
	{ID: "pass_go_7", Kind: KindAction, Name: NamePassGo, Value: 1},
	{ID: "pass_go_8", Kind: KindAction, Name: NamePassGo, Value: 1},
	{ID: "pass_go_9", Kind: KindAction, Name: NamePassGo, Value: 1},
	{ID: "pass_go_10", Kind: KindAction, Name: NamePassGo, Value: 1},

	{ID: "just_say_no_1", Kind: KindAction, Name: NameJustSayNo, Value: 4},
	{ID: "just_say_no_2", Kind: KindAction, Name: NameJustSayNo, Value: 4},
	{ID: "just_say_no_3", Kind: KindAction, Name: NameJustSayNo, Value: 4},

	// Rent cards
	{ID: "rent_brown_lightblue", Kind: KindRent, Name: NameRent, Colors: []Color{ColorBrown, ColorLightBlue}, Value: 1},
	{ID: "rent_pink_orange", Kind: KindRent, Name: NameRent, Colors: []Color{ColorPink, ColorOrange}, Value: 1},
	{ID: "rent_red_yellow", Kind: KindRent, Name: NameRent, Colors: []Color{ColorRed, ColorYellow}, Value: 1},
	{ID: "rent_green_darkblue", Kind: KindRent, Name: NameRent, Colors: []Color{ColorGreen, ColorDarkBlue}, Value: 1},
	{ID: "rent_railroad_utility", Kind: KindRent, Name: NameRent, Colors: []Color{ColorRailroad, ColorUtility}, Value: 1},

	{ID: "wild_rent_1", Kind: KindRent, Name: NameWildRent, Value: 3},
	{ID: "wild_rent_2", Kind: KindRent, Name: NameWildRent, Value: 3},
	{ID: "wild_rent_3", Kind: KindRent, Name: NameWildRent, Value: 3},

	// House and hotel cards
	{ID: "house_1", Kind: KindHouse, Name: "House", Value: 3},
	{ID: "house_2", Kind: KindHouse, Name: "House", Value: 3},
	{ID: "house_3", Kind: KindHouse, Name: "House", Value: 3},

	{ID: "hotel_1", Kind: KindHotel, Name: "Hotel", Value: 4},
	{ID: "hotel_2", Kind: KindHotel, Name: "Hotel", Value: 4},
	{ID: "hotel_3", Kind: KindHotel, Name: "Hotel", Value: 4},
}

var byID = func() map[string]Card {
	index := make(map[string]Card, len(catalog))
	for _, card := range catalog {
		index[card.ID] = card
	}
	return index
}()

// Get looks up a card by id.
func Get(id string) (Card, bool) {
	card, ok := byID[id]
	return card, ok
}

// MustGet looks up a card by id and panics on an unknown id. Unknown ids in
// committed state indicate corruption, not a player mistake.
func MustGet(id string) Card {
	card, ok := byID[id]
	if !ok {
		panic(fmt.Sprintf("cards: unknown card id %q", id))
	}
	return card
}

// Value returns a card's printed face value, 0 for unknown ids.
func Value(id string) int {
	return byID[id].Value
}

// Count returns the number of cards in the reference deck.
func Count() int {
	return len(catalog)
}

// All returns a copy of the full catalog.
func All() []Card {
	out := make([]Card, len(catalog))
	copy(out, catalog)
	return out
}

// NewDeck returns a freshly shuffled draw pile containing every card id.
func NewDeck() []string {
	return NewDeckFrom(nil)
}

// NewDeckFrom shuffles with the supplied source, or the global source when
// rng is nil. Tests pass a seeded source for reproducible deals.
func NewDeckFrom(rng *rand.Rand) []string {
	deck := make([]string, len(catalog))
	for i, card := range catalog {
		deck[i] = card.ID
	}
	swap := func(i, j int) { deck[i], deck[j] = deck[j], deck[i] }
	if rng != nil {
		rng.Shuffle(len(deck), swap)
	} else {
		rand.Shuffle(len(deck), swap)
	}
	return deck
}
