package catalog

// Gallery groups used by the site filter bar.
const (
	GroupFeatured = "featured"
	GroupPlaces   = "places"
	GroupSubjects = "subjects"
	GroupStyles   = "styles"
)

// defaultCategories mirrors the source folders the site ships with. Names are
// the on-disk folder names and keep their original casing.
var defaultCategories = []Category{
	{Name: "architecture", Group: GroupSubjects},
	{Name: "air show", Title: "Air Show", Group: GroupStyles, Description: "Dramatic captures of aerial performances and magnificent aircraft"},
	{Name: "b & w", Title: "Black & White", Group: GroupStyles, Description: "Monochrome photography highlighting contrast, texture, and form"},
	{Name: "bidar", Group: GroupPlaces, Description: "Ancient city in Karnataka with rich historical and architectural significance"},
	{Name: "Clouds", Group: GroupSubjects, Description: "The ever-changing canvas of the sky and its dramatic formations"},
	{Name: "Featured", Group: GroupFeatured, Description: "A curated selection of my finest photography work"},
	{Name: "Festivals", Group: GroupSubjects, Description: "Vibrant celebrations and cultural events capturing human expressions"},
	{Name: "Hampi", Group: GroupPlaces, Description: "The ancient ruins and boulder-strewn landscape of this UNESCO site"},
	{Name: "heritage", Group: GroupSubjects, Description: "Historical monuments and cultural landmarks preserving our rich history"},
	{Name: "Hyderabad", Group: GroupPlaces, Description: "The city of pearls, with its unique blend of history and modernity"},
	{Name: "kanhari caves", Group: GroupPlaces, Description: "Ancient Buddhist rock-cut monuments dating back to the 1st century"},
	{Name: "kolkata streets 2001", Title: "Kolkata Streets", Group: GroupPlaces, Description: "The soul and character of Kolkata captured through street photography"},
	{Name: "landscapes", Group: GroupSubjects, Description: "Stunning natural vistas showcasing the beauty of our planet"},
	{Name: "Ladakh", Group: GroupPlaces, Description: "The breathtaking landscapes and culture of the Himalayan region"},
	{Name: "lanka", Group: GroupPlaces, Description: "The tropical beauty and cultural richness of Sri Lanka"},
	{Name: "lockdown", Group: GroupStyles, Description: "Perspectives and moments captured during periods of isolation"},
	{Name: "london", Group: GroupPlaces, Description: "Street scenes and architectural wonders from the UK capital"},
	{Name: "Macro", Group: GroupStyles, Description: "The hidden details of our world revealed through close-up photography"},
	{Name: "Rachakonda", Group: GroupPlaces, Description: "The historic fort and its surrounding landscapes near Hyderabad"},
	{Name: "rajasthan", Group: GroupPlaces, Description: "The colors, architecture, and desert landscapes of royal Rajasthan"},
	{Name: "rock forms", Group: GroupSubjects, Description: "Natural sculptures shaped by time, weather, and geological forces"},
	{Name: "tadoba", Group: GroupPlaces, Description: "Wildlife and landscapes from Maharashtra's largest national park"},
	{Name: "thai", Title: "Thailand", Group: GroupPlaces, Description: "The temples, beaches, and vibrant street life of Thailand"},
	{Name: "tumbs", Title: "Tombs", Group: GroupSubjects, Description: "Architectural marvels commemorating historical figures"},
	{Name: "warangaL", Title: "Warangal", Group: GroupPlaces, Description: "Historical sites and monuments of the Kakatiya dynasty"},
	{Name: "wildlife", Group: GroupSubjects, Description: "Capturing the beauty and behavior of animals in their natural habitat"},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultCategories...)
	if err != nil {
		panic("catalog: invalid built-in categories: " + err.Error())
	}
	return c
}
