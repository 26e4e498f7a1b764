package models

import "time"

// Domain models matching the database schema in db/migrations/<driver>/0001_init.sql

type Applicant struct {
	ID               int64     `json:"id" db:"id"`
	Email            string    `json:"email" db:"email"`
	Phone            string    `json:"phone" db:"phone"`
	RedditUsername   string    `json:"redditUsername" db:"reddit_username"`
	TwitterUsername  *string   `json:"twitterUsername" db:"twitter_username"`
	YoutubeUsername  *string   `json:"youtubeUsername" db:"youtube_username"`
	FacebookUsername *string   `json:"facebookUsername" db:"facebook_username"`
	RedditVerified   bool      `json:"redditVerified" db:"reddit_verified"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}

type ContractorStatus string

const (
	ContractorStatusPending  ContractorStatus = "pending"
	ContractorStatusAccepted ContractorStatus = "accepted"
	ContractorStatusRejected ContractorStatus = "rejected"
)

type ContractorRequest struct {
	ID          int64            `json:"id" db:"id"`
	UserID      int64            `json:"userId" db:"user_id"`
	Email       string           `json:"email" db:"email"`
	CompanySlug string           `json:"companySlug" db:"company_slug"`
	CompanyName string           `json:"companyName" db:"company_name"`
	Status      ContractorStatus `json:"status" db:"status"`
	JoinedSlack bool             `json:"joinedSlack" db:"joined_slack"`
	CanStartJob bool             `json:"canStartJob" db:"can_start_job"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time        `json:"updatedAt" db:"updated_at"`
}

// MatchedCompany is the offer shown to an applicant after a successful intake.
type MatchedCompany struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	PayRate string `json:"payRate"`
	Bonus   string `json:"bonus"`
}

// MarketplaceOffer is the single company every verified applicant is routed to.
var MarketplaceOffer = MatchedCompany{
	Name:    "Silicon Valley Consulting",
	Slug:    "silicon-valley-consulting",
	PayRate: "$2.00 per hour",
	Bonus:   "$500",
}
