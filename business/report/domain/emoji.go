package domain

import "strings"

// emojiRule maps any of its keywords, matched as substrings of the
// lowercased name, to an emoji. Rules are checked in order.
type emojiRule struct {
	keywords []string
	emoji    string
}

const (
	defaultItemEmoji       = "📦"
	defaultProfessionEmoji = "🛠️"
)

var itemEmojis = []emojiRule{
	// materials
	{[]string{"iron", "steel", "metal"}, "⚔️"},
	{[]string{"wood", "lumber", "board", "log"}, "🪵"},
	{[]string{"stone", "granite", "limestone", "rock"}, "🪨"},
	{[]string{"coal", "charcoal"}, "⚫"},
	{[]string{"oil", "petroleum"}, "🛢️"},
	{[]string{"glass"}, "🔮"},
	{[]string{"clay", "pottery"}, "🏺"},
	{[]string{"sand"}, "⏳"},
	{[]string{"cement", "concrete", "mortar"}, "🧱"},
	{[]string{"copper"}, "🔶"},
	{[]string{"gold"}, "✨"},

	// food
	{[]string{"meat", "bacon", "sausage"}, "🥓"},
	{[]string{"vegetable", "salad", "beet", "corn"}, "🥗"},
	{[]string{"fruit", "berry", "apple", "pineapple"}, "🍍"},
	{[]string{"bread", "flour", "wheat"}, "🍞"},
	{[]string{"soup", "stew"}, "🍲"},
	{[]string{"fish", "seafood"}, "🐟"},
	{[]string{"milk", "cheese"}, "🥛"},
	{[]string{"sugar", "syrup"}, "🍯"},
	{[]string{"bean", "seed"}, "🌱"},
	{[]string{"mushroom"}, "🍄"},

	// tools
	{[]string{"axe", "hammer", "pickaxe", "shovel", "tool"}, "🔨"},
	{[]string{"wheel", "gear", "mechanical"}, "⚙️"},
	{[]string{"cart", "wagon"}, "🛒"},
	{[]string{"mill", "windmill"}, "🌀"},
	{[]string{"pump"}, "🔧"},
	{[]string{"saw", "blade"}, "🪚"},
	{[]string{"drill"}, "🔩"},
	{[]string{"anchor"}, "⚓"},

	// textiles
	{[]string{"fabric", "cloth", "textile", "yarn"}, "🧵"},
	{[]string{"shirt", "clothing"}, "👕"},
	{[]string{"pants", "trousers"}, "👖"},
	{[]string{"shoes", "boots"}, "👢"},
	{[]string{"hat", "cap"}, "🎩"},
	{[]string{"backpack", "bag"}, "🎒"},
	{[]string{"belt"}, "🔗"},
	{[]string{"canvas"}, "🎨"},

	// furniture
	{[]string{"table", "desk"}, "🪑"},
	{[]string{"chair", "bench"}, "🪑"},
	{[]string{"bed"}, "🛏️"},
	{[]string{"door"}, "🚪"},
	{[]string{"rug", "carpet"}, "🏠"},
	{[]string{"couch", "sofa"}, "🛋️"},
	{[]string{"lamp", "light"}, "💡"},
	{[]string{"mirror"}, "🪞"},
	{[]string{"fountain"}, "⛲"},

	// chemicals
	{[]string{"powder", "dust"}, "💨"},
	{[]string{"acid", "chemical"}, "🧪"},
	{[]string{"fertilizer", "compost"}, "🌿"},
	{[]string{"ink", "dye"}, "🖋️"},
	{[]string{"explosive"}, "💥"},

	// decoration
	{[]string{"art", "paint"}, "🎨"},
	{[]string{"tapestry", "decoration"}, "🖼️"},
	{[]string{"bunting", "streamer"}, "🎊"},
	{[]string{"sign"}, "🪧"},
	{[]string{"plaque"}, "🏷️"},

	// misc
	{[]string{"paper", "research"}, "📄"},
	{[]string{"nail", "screw"}, "📎"},
	{[]string{"rope", "cord"}, "🪢"},
	{[]string{"fiber"}, "🧶"},
	{[]string{"waste", "dirt", "trash"}, "🗑️"},
}

var professionEmojis = []emojiRule{
	{[]string{"mining"}, "⛏️"},
	{[]string{"masonry"}, "🧱"},
	{[]string{"carpentry", "wood"}, "🪚"},
	{[]string{"smithing", "metal"}, "🔨"},
	{[]string{"tailoring", "fabric"}, "🧵"},
	{[]string{"cooking", "culinary"}, "👨‍🍳"},
	{[]string{"farming", "agriculture"}, "🌾"},
	{[]string{"hunting"}, "🏹"},
	{[]string{"gathering"}, "🌿"},
	{[]string{"engineering", "mechanic"}, "⚙️"},
	{[]string{"glassworking"}, "🔮"},
	{[]string{"pottery"}, "🏺"},
}

// ItemEmoji picks the emoji for an item or recipe variant name.
func ItemEmoji(name string) string {
	return lookup(itemEmojis, name, defaultItemEmoji)
}

// ProfessionEmoji picks the emoji for a skill name.
func ProfessionEmoji(name string) string {
	return lookup(professionEmojis, name, defaultProfessionEmoji)
}

func lookup(rules []emojiRule, name, fallback string) string {
	lower := strings.ToLower(name)
	for _, r := range rules {
		for _, k := range r.keywords {
			if strings.Contains(lower, k) {
				return r.emoji
			}
		}
	}
	return fallback
}
