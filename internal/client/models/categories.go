package models

// SuggestedCategories are offered by the add form. Any non-empty category is
// accepted.
var SuggestedCategories = []string{
	"Nature",
	"Love",
	"Life",
	"Death",
	"Spirituality",
	"Politics",
	"Social Issues",
	"Personal",
	"Philosophy",
	"Humor",
	"Other",
}
