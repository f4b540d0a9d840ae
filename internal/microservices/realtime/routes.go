package realtime

import (
	"time"

	"skillhub/internal/microservices/http-api/dto"
	"skillhub/internal/microservices/http-api/models"
	"skillhub/internal/microservices/http-api/service"
)

// Message types understood by the dispatcher
const (
	TypeUser         = "user"
	TypeOrganization = "organization"
	TypeProduct      = "product"
	TypeSkill        = "skill"
	TypeUserStory    = "userstory"
	TypePing         = "ping"
)

// Services bundles the domain services reachable over the realtime channel
type Services struct {
	Organizations service.OrganizationService
	Products      service.ProductService
	Skills        service.SkillService
	UserStories   service.UserStoryService
}

// RegisterHandlers installs every domain handler on d
func RegisterHandlers(d *Dispatcher, svc Services, users *UserDirectory) {
	d.Handle(TypeUser, UserHandler(users))
	d.Handle(TypeOrganization, EntityHandler[models.Organization](TypeOrganization, svc.Organizations,
		RequestDecoder((*dto.OrganizationRequest).ToModel)))
	d.Handle(TypeProduct, EntityHandler[models.Product](TypeProduct, svc.Products,
		RequestDecoder((*dto.ProductRequest).ToModel)))
	d.Handle(TypeSkill, EntityHandler[models.Skill](TypeSkill, svc.Skills,
		RequestDecoder((*dto.SkillRequest).ToModel)))
	d.Handle(TypeUserStory, EntityHandler[models.UserStory](TypeUserStory, svc.UserStories,
		RequestDecoder((*dto.UserStoryRequest).ToModel)))
	d.Handle(TypePing, PingHandler(func() int64 { return time.Now().Unix() }))
}
