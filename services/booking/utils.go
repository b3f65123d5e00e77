package booking

import (
	"strings"

	"laborlink/models"
	"laborlink/utils"

	"github.com/google/uuid"
)

// ParseBookingID rejects ids that are not UUIDs.
func ParseBookingID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return utils.NewInvalidInput("Invalid booking id")
	}
	return nil
}

// laborDisplayName renders "<skill> <name>", e.g. "Plumber Nimal".
func laborDisplayName(labor *models.Labor) string {
	skill := "Labor"
	name := ""
	if labor != nil {
		if labor.SkillCategory != "" {
			skill = labor.SkillCategory
		}
		name = labor.Name
	}
	return strings.TrimSpace(skill + " " + name)
}
