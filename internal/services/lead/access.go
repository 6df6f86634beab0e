package lead

import (
	"github.com/google/uuid"

	"github.com/rajivgeraev/dealer-api/internal/models"
)

// canView: администратор всегда, дилер для заявок по своим объявлениям,
// пользователь для своих заявок
func canView(role models.Role, userID uuid.UUID, lead *models.Lead) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleDealer:
		return lead.ListingDealerID == userID
	default:
		return isAuthor(userID, lead)
	}
}

// canUpdate совпадает с правом просмотра
func canUpdate(role models.Role, userID uuid.UUID, lead *models.Lead) bool {
	return canView(role, userID, lead)
}

// canDelete: администратор и автор заявки. Дилер заявки не удаляет.
func canDelete(role models.Role, userID uuid.UUID, lead *models.Lead) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleDealer:
		return false
	default:
		return isAuthor(userID, lead)
	}
}

func isAuthor(userID uuid.UUID, lead *models.Lead) bool {
	return lead.FromUserID != nil && *lead.FromUserID == userID
}
