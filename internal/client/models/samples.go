package models

import "time"

const roadNotTaken = `Two roads diverged in a yellow wood,
And sorry I could not travel both
And be one traveler, long I stood
And looked down one as far as I could
To where it bent in the undergrowth;

Then took the other, as just as fair,
And having perhaps the better claim,
Because it was grassy and wanted wear;
Though as for that the passing there
Had worn them really about the same,

And both that morning equally lay
In leaves no step had trodden black.
Oh, I kept the first for another day!
Yet knowing how way leads on to way,
I doubted if I should ever come back.

I shall be telling this with a sigh
Somewhere ages and ages hence:
Two roads diverged in a wood, and I—
I took the one less traveled by,
And that has made all the difference.`

const sonnet18 = `Shall I compare thee to a summer's day?
Thou art more lovely and more temperate:
Rough winds do shake the darling buds of May,
And summer's lease hath all too short a date:
Sometime too hot the eye of heaven shines,
And often is his gold complexion dimm'd;
And every fair from fair sometime declines,
By chance or nature's changing course untrimm'd;
But thy eternal summer shall not fade
Nor lose possession of that fair thou owest;
Nor shall Death brag thou wander'st in his shade,
When in eternal lines to time thou growest:
   So long as men can breathe or eyes can see,
   So long lives this, and this gives life to thee.`

// SamplePoems is the bootstrap set written into an empty collection.
func SamplePoems() []PoemInput {
	return []PoemInput{
		{
			Title:       "The Road Not Taken",
			Author:      "Robert Frost",
			Description: roadNotTaken,
			Category:    "Nature",
			Tags:        []string{"choices", "life", "nature"},
		},
		{
			Title:       "Sonnet 18",
			Author:      "William Shakespeare",
			Description: sonnet18,
			Category:    "Love",
			Tags:        []string{"love", "beauty", "eternity"},
		},
	}
}

// LocalSamplePoems materialises the bootstrap set for the local store with
// ids "1" and "2" and both timestamps set to now.
func LocalSamplePoems(now time.Time) []Poem {
	inputs := SamplePoems()
	out := make([]Poem, len(inputs))
	for i, in := range inputs {
		out[i] = Poem{
			ID:        string(rune('1' + i)),
			CreatedAt: now,
			UpdatedAt: now,
		}.WithInput(in)
	}
	return out
}
