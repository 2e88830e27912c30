package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jobboardhq/jobboard-api/internal/domain/entity"
)

// accountJSON is the public projection of an account. The password hash and
// verification token never leave the server.
func accountJSON(a *entity.Account) gin.H {
	out := gin.H{
		"id":          a.ID,
		"name":        a.Name,
		"email":       a.Email,
		"role":        a.Role.String(),
		"is_verified": a.IsVerified,
		"avatar_url":  a.AvatarURL,
		"created_at":  a.CreatedAt,
		"updated_at":  a.UpdatedAt,
	}
	if a.IsEmployer() {
		out["organization_name"] = a.OrganizationName
		out["industry_type"] = a.IndustryType
		out["total_employee"] = a.TotalEmployee
		out["description"] = a.Description
		out["address"] = a.Address
		out["province"] = a.Province
		out["city"] = a.City
		out["district"] = a.District
		out["postal_code"] = a.PostalCode
	}
	return out
}
