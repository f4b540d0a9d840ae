package service

import (
	"net/url"
	"strings"

	"skillhub/internal/cache"
	"skillhub/internal/microservices/http-api/models"
	"skillhub/internal/microservices/http-api/repository"

	"github.com/samber/lo"
)

const CollectionOrganizations = "organizations"

type OrganizationService interface {
	CRUDService[models.Organization]
}

func NewOrganizationService(repo repository.OrganizationRepository, entityCache *cache.EntityCache) OrganizationService {
	return newCRUDService[models.Organization](repo, entityCache, CollectionOrganizations, normalizeOrganization)
}

func normalizeOrganization(o *models.Organization) error {
	o.Name = strings.TrimSpace(o.Name)
	if o.Name == "" {
		return validationError("name is required")
	}
	o.Website = strings.TrimSpace(o.Website)
	if o.Website != "" {
		if u, err := url.ParseRequestURI(o.Website); err != nil || u.Host == "" {
			return validationError("website must be an absolute URL")
		}
	}
	o.Jobs = compact(o.Jobs)
	o.Products = compact(o.Products)
	return nil
}

// compact trims entries, drops blanks and duplicates, keeping order
func compact(values []string) []string {
	return lo.Uniq(lo.Compact(lo.Map(values, func(v string, _ int) string {
		return strings.TrimSpace(v)
	})))
}
