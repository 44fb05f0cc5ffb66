// Package generator produces the standard content plan for a calendar month.
package generator

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/postboard/internal/models"
)

type template struct {
	id          string
	postType    models.PostType
	title       string
	description string
	day         int
}

var petNames = []string{"Max", "Bella", "Charlie", "Luna"}

var petDays = []int{6, 13, 20, 27}

const petDescription = "Share your furry friend for a chance to be featured!"

// recurring is the monthly quota, in generation order after the pet posts.
var recurring = []template{
	{"digital-1", models.PostTypeDigital, "Mobile Banking Made Easy", "Access your accounts anytime, anywhere with our award-winning mobile app", 8},
	{"financial-1", models.PostTypeFinancial, "Smart Savings Tips for 2025", "Start the new year right with these proven strategies", 10},
	{"financial-2", models.PostTypeFinancial, "Understanding Your Credit Score", "Learn how to improve and maintain healthy credit", 24},
	{"podcast-1", models.PostTypePodcast, "New Episode: Building Wealth in Your 30s", "Expert advice on investments, retirement planning, and more", 15},
	{"podcast-promo-1", models.PostTypePodcastPromo, "🎧 Don't Miss Our Latest Episode!", "Subscribe now on all major podcast platforms", 17},
	{"podcast-promo-2", models.PostTypePodcastPromo, "Behind the Scenes: Podcast Preview", "Sneak peek at next week's conversation", 29},
	{"blog-1", models.PostTypeBlog, "Blog: 5 Ways to Save on Your Monthly Budget", "Practical tips from our financial experts", 22},
	{"product-1", models.PostTypeProduct, "Introducing: Home Equity Line of Credit", "Competitive rates and flexible terms. Learn more today!", 7},
	{"product-2", models.PostTypeProduct, "Auto Loans with Rates as Low as 3.99%", "Get pre-approved in minutes. No impact to your credit score!", 16},
	{"product-3", models.PostTypeProduct, "Rewards Credit Card: Earn Points on Every Purchase", "No annual fee. Redeem for cash back, travel, or gift cards", 30},
	{"video-1", models.PostTypeVideo, "📹 Member Testimonial: Why I Love NorthCountry FCU", "Real stories from real members about their experience", 9},
	{"video-2", models.PostTypeVideo, "📹 Quick Tip: How to Set Up Mobile Deposits", "60-second tutorial on mobile check deposits", 14},
	{"video-3", models.PostTypeVideo, "📹 Behind the Scenes: Meet Our Team", "Get to know the people who serve you every day", 21},
	{"video-4", models.PostTypeVideo, "📹 Financial Wellness Workshop Highlights", "Key takeaways from our recent community event", 28},
	{"special-1", models.PostTypeSpecial, "Special Event: Community Cleanup Day", "Join us for a day of giving back to our community", 18},
	{"gift-1", models.PostTypeGift, "Gift Card Giveaway: Win a $50 Gift Card", "Enter to win a $50 gift card to your favorite store", 31},
	{"ticket-1", models.PostTypeTicket, "Ticket Giveaway: Win a VIP Experience", "Enter to win a VIP experience at our next event", 15},
}

// PostsPerMonth is the number of posts Generate returns for any valid month.
var PostsPerMonth = len(petDays) + len(recurring)

// Generate returns the standard posts for a month, sorted by scheduled date.
// Posts sharing a date keep their generation order. Day offsets past the end
// of a short month are clamped to its last day. An invalid month or a
// negative year yields nil.
func Generate(month time.Month, year int) []models.Post {
	if month < time.January || month > time.December || year < 0 {
		return nil
	}

	last := DaysIn(month, year)
	posts := make([]models.Post, 0, PostsPerMonth)

	for i, day := range petDays {
		posts = append(posts, models.Post{
			ID:            fmt.Sprintf("pet-%d", day),
			Type:          models.PostTypePet,
			Title:         "Meet This Week's Pet: " + petNames[i] + "!",
			Description:   petDescription,
			ScheduledDate: date(year, month, clamp(day, last)),
		})
	}

	for _, tpl := range recurring {
		posts = append(posts, models.Post{
			ID:            tpl.id,
			Type:          tpl.postType,
			Title:         tpl.title,
			Description:   tpl.description,
			ScheduledDate: date(year, month, clamp(tpl.day, last)),
		})
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].ScheduledDate.Before(posts[j].ScheduledDate)
	})

	return posts
}

// DaysIn returns the number of days in a month
func DaysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func clamp(day, last int) int {
	if day > last {
		return last
	}
	return day
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}
