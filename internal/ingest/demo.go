package ingest

import "github.com/signalsift/signalsift/internal/model"

// DemoComments returns a small built-in batch that exercises every routing
// path: promotional spam, coordinated attacks, competitor shilling and
// ordinary organic feedback.
func DemoComments() []model.Comment {
	newAccount := 12
	return []model.Comment{
		{
			ID:              "comment_1",
			Text:            "OMG this is literally THE BEST product ever!! Use code AMAZING15 for discount! Life changing!!! #ad #sponsored #blessed",
			AuthorUsername:  "luxurylifestyle_babe",
			AuthorBio:       "Brand ambassador for @TechCorp @BeautyBrand @FashionHouse | PR friendly | Partnerships welcome!",
			AuthorFollowers: 15420,
			Likes:           87,
			Replies:         3,
			Shares:          24,
			Context:         "beauty_product_review_2024",
		},
		{
			ID:              "comment_2",
			Text:            "Thanks for the honest review. I've been considering this product for a while. The price point seems reasonable for the features mentioned.",
			AuthorUsername:  "tech_curious_mom",
			AuthorBio:       "Mom of 2 | Love trying new tech gadgets | Honest reviews only",
			AuthorFollowers: 342,
			Likes:           12,
			Replies:         4,
			Shares:          1,
			Context:         "beauty_product_review_2024",
		},
		{
			ID:              "comment_3",
			Text:            "This creator is a FRAUD! Don't trust anything they say. Their previous reviews were all LIES. Save your money people!!",
			AuthorUsername:  "truth_teller_2024",
			AuthorBio:       "Exposing fake influencers and scam products since 2024 | Follow for REAL truth",
			AuthorFollowers: 1,
			Likes:           156,
			Replies:         47,
			Shares:          89,
			AccountAgeDays:  &newAccount,
			Context:         "beauty_product_review_2024",
		},
		{
			ID:              "comment_4",
			Text:            "Good breakdown of the features. Appreciate you mentioning both pros and cons instead of just hyping it up.",
			AuthorUsername:  "sarah_thompson",
			AuthorBio:       "Software engineer | Dog mom | Coffee enthusiast",
			AuthorFollowers: 1247,
			Likes:           23,
			Replies:         2,
			Context:         "beauty_product_review_2024",
		},
		{
			ID:              "comment_5",
			Text:            "Terrible quality! I returned mine immediately. Try @CompetitorBrand instead - much better value and customer service!",
			AuthorUsername:  "product_expert_pro",
			AuthorBio:       "Product reviewer | Helping people make smart purchases | @CompetitorBrand affiliate partner",
			AuthorFollowers: 8934,
			Likes:           73,
			Replies:         15,
			Shares:          32,
			Context:         "beauty_product_review_2024",
		},
		{
			ID:              "comment_6",
			Text:            "Has anyone tried this with sensitive skin? I'm interested but worried about allergic reactions based on the ingredient list.",
			AuthorUsername:  "jenny_wellness",
			AuthorBio:       "Skincare journey | Sensitive skin struggles | Sharing what works",
			AuthorFollowers: 567,
			Likes:           8,
			Replies:         12,
			Shares:          2,
			Context:         "beauty_product_review_2024",
		},
	}
}
