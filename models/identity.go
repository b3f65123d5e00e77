package models

// Labor is the read-only directory view of a laborer.
type Labor struct {
	ID            string   `bson:"id" json:"id"`
	Name          string   `bson:"name" json:"name"`
	Email         string   `bson:"email" json:"email"`
	Phone         string   `bson:"phone" json:"phone"`
	Address       string   `bson:"address" json:"address"`
	Location      string   `bson:"location" json:"location"`
	SkillCategory string   `bson:"skillCategory" json:"skillCategory"`
	DailyRate     *float64 `bson:"dailyRate,omitempty" json:"dailyRate,omitempty"`
	IsActive      bool     `bson:"isActive" json:"isActive"`
}

// Customer is the read-only directory view of a customer.
type Customer struct {
	ID      string `bson:"id" json:"id"`
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Phone   string `bson:"phone" json:"phone"`
	Address string `bson:"address" json:"address"`
}
