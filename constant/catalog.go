package constant

// Catalog entries back the /api/config endpoint so clients can populate
// their pickers without hardcoding the supported options.

type Platform struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Aspect string `json:"aspect"`
}

type Style struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Desc string `json:"desc"`
}

type Transition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var Platforms = []Platform{
	{ID: "tiktok", Name: "TikTok", Aspect: "9:16"},
	{ID: "youtube_shorts", Name: "YouTube Shorts", Aspect: "9:16"},
	{ID: "instagram_reel", Name: "Instagram Reel", Aspect: "9:16"},
	{ID: "youtube", Name: "YouTube", Aspect: "16:9"},
	{ID: "instagram_feed", Name: "Instagram Feed", Aspect: "1:1"},
}

var Styles = []Style{
	{ID: "viral_facts", Name: "Viral Facts", Desc: "Quick, engaging facts"},
	{ID: "story_time", Name: "Story Time", Desc: "Narrative storytelling"},
	{ID: "motivational", Name: "Motivational", Desc: "Inspiring content"},
	{ID: "educational", Name: "Educational", Desc: "Teaching content"},
	{ID: "mystery_investigation", Name: "Mystery Investigation", Desc: "Detective-style breakdown"},
	{ID: "true_crime", Name: "True Crime", Desc: "Documentary narration"},
	{ID: "creepy_story", Name: "Creepy Storytelling", Desc: "Atmospheric horror"},
	{ID: "conspiracy", Name: "Conspiracy Deep-Dive", Desc: "Analytical investigation"},
}

var Transitions = []Transition{
	{ID: "fade", Name: "Fade"},
	{ID: "slideright", Name: "Slide Right"},
	{ID: "slideleft", Name: "Slide Left"},
	{ID: "wiperight", Name: "Wipe Right"},
	{ID: "dissolve", Name: "Dissolve"},
	{ID: "circleopen", Name: "Circle Open"},
	{ID: "kenburns", Name: "Ken Burns (Zoom/Pan)"},
}

var Durations = []int{15, 25, 30, 45, 60, 90, 120, 180, 240, 300}
