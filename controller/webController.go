package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/schema"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jfmanager/web/api"
	"github.com/jfmanager/web/entity"
	"github.com/jfmanager/web/helpers"
	"github.com/jfmanager/web/routes"
	"github.com/jfmanager/web/store"
	"github.com/jfmanager/web/util"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type WebController struct {
	API     *api.Client
	Auth    *store.AuthStore
	Members *store.MembersStore
	Parents *store.ParentsStore
}

func (h *WebController) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (h *WebController) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if err := h.Auth.Login(c.Request.Context(), username, password); err != nil {
		log.Warn().Err(err).Str("username", username).Msg("login failed")
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Error": h.Auth.Err(),
		})
		return
	}

	c.Redirect(http.StatusFound, routes.Home)
}

func (h *WebController) Logout(c *gin.Context) {
	h.Auth.Logout()
	h.Members.Reset()
	h.Parents.Reset()
	c.Redirect(http.StatusFound, routes.Login)
}

func (h *WebController) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	var stats *entity.MemberStatistics

	errwg := new(errgroup.Group)
	errwg.Go(func() error {
		var err error
		stats, err = h.API.MemberStatistics(ctx)
		return err
	})
	errwg.Go(func() error {
		h.Members.FetchStatuses(ctx)
		return nil
	})
	errwg.Go(func() error {
		h.Members.FetchGroups(ctx)
		return nil
	})

	if err := errwg.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to load dashboard")
		c.HTML(http.StatusBadGateway, "error.html", gin.H{
			"Error": api.ErrorDetail(err, "Failed to load dashboard"),
		})
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"User":       h.Auth.User(),
		"Statistics": stats,
		"StatusRows": util.SplitToColumns(h.Members.Statuses(), 3),
		"Groups":     h.Members.Groups(),
	})
}

type memberQuery struct {
	Limit    int    `schema:"limit"`
	Offset   int    `schema:"offset"`
	Search   string `schema:"search"`
	Status   int64  `schema:"status"`
	Group    int64  `schema:"group"`
	Ordering string `schema:"ordering"`
}

func (h *WebController) MembersPage(c *gin.Context) {
	var q memberQuery
	if err := decoder.Decode(&q, c.Request.URL.Query()); err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Error": err.Error()})
		return
	}

	if q.Limit <= 0 {
		q.Limit = helpers.MembersPageSize
	}

	params := &api.MemberListParams{
		Limit:    q.Limit,
		Offset:   q.Offset,
		Search:   q.Search,
		Status:   q.Status,
		Group:    q.Group,
		Ordering: q.Ordering,
	}

	if err := h.Members.FetchMembers(c.Request.Context(), params); err != nil {
		c.HTML(http.StatusBadGateway, "error.html", gin.H{"Error": h.Members.Err()})
		return
	}

	h.Members.FetchStatuses(c.Request.Context())
	h.Members.FetchGroups(c.Request.Context())

	c.HTML(http.StatusOK, "members.html", gin.H{
		"Members":          h.Members.Members(),
		"Statuses":         h.Members.Statuses(),
		"Groups":           h.Members.Groups(),
		"Pagination":       h.Members.Pagination(),
		"Query":            q,
		"SearchDebounceMs": helpers.SearchDebounce.Milliseconds(),
	})
}

func (h *WebController) MemberDetailPage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Error": "invalid member id"})
		return
	}

	ctx := c.Request.Context()

	var (
		member  *entity.Member
		parents []entity.Parent
		events  []entity.Event
	)

	errwg := new(errgroup.Group)
	errwg.Go(func() error {
		var err error
		member, err = h.Members.FetchMemberByID(ctx, id)
		return err
	})
	errwg.Go(func() error {
		var err error
		parents, err = h.API.MemberParents(ctx, id)
		return err
	})
	errwg.Go(func() error {
		var err error
		events, err = h.API.MemberEvents(ctx, id)
		return err
	})

	if err := errwg.Wait(); err != nil {
		status := http.StatusBadGateway
		if api.IsNotFound(err) {
			status = http.StatusNotFound
		}
		c.HTML(status, "error.html", gin.H{"Error": api.ErrorDetail(err, "Failed to fetch member")})
		return
	}

	c.HTML(http.StatusOK, "member_detail.html", gin.H{
		"Member":  member,
		"Parents": parents,
		"Events":  events,
	})
}

type memberForm struct {
	Name               string `schema:"name"`
	Lastname           string `schema:"lastname"`
	Birthday           string `schema:"birthday"`
	Joined             string `schema:"joined"`
	Email              string `schema:"email"`
	Street             string `schema:"street"`
	ZipCode            string `schema:"zip_code"`
	City               string `schema:"city"`
	Phone              string `schema:"phone"`
	Mobile             string `schema:"mobile"`
	Notes              string `schema:"notes"`
	IdentityCardNumber string `schema:"identity_card_number"`
	CanSwim            bool   `schema:"can_swimm"`
	Group              int64  `schema:"group"`
	Status             int64  `schema:"status"`
}

func (f *memberForm) patch() (map[string]any, error) {
	patch := map[string]any{
		"name":                 f.Name,
		"lastname":             f.Lastname,
		"email":                f.Email,
		"street":               f.Street,
		"zip_code":             f.ZipCode,
		"city":                 f.City,
		"phone":                f.Phone,
		"mobile":               f.Mobile,
		"notes":                f.Notes,
		"identity_card_number": f.IdentityCardNumber,
		"can_swimm":            f.CanSwim,
	}
	if f.Group != 0 {
		patch["group"] = f.Group
	}
	if f.Status != 0 {
		patch["status"] = f.Status
	}
	for key, raw := range map[string]string{"birthday": f.Birthday, "joined": f.Joined} {
		if raw == "" {
			continue
		}
		var d entity.Date
		if err := d.UnmarshalJSON([]byte(`"` + raw + `"`)); err != nil {
			return nil, err
		}
		patch[key] = d
	}
	return patch, nil
}

func (h *WebController) MemberCreate(c *gin.Context) {
	var form memberForm
	if err := h.decodeForm(c, &form); err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Error": err.Error()})
		return
	}

	patch, err := form.patch()
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Error": err.Error()})
		return
	}

	member := &entity.Member{
		Name:               form.Name,
		Lastname:           form.Lastname,
		Email:              form.Email,
		Street:             form.Street,
		ZipCode:            form.ZipCode,
		City:               form.City,
		Phone:              form.Phone,
		Mobile:             form.Mobile,
		Notes:              form.Notes,
		IdentityCardNumber: form.IdentityCardNumber,
		CanSwim:            form.CanSwim,
	}
	if d, ok := patch["birthday"].(entity.Date); ok {
		member.Birthday = &d
	}
	if d, ok := patch["joined"].(entity.Date); ok {
		member.Joined = &d
	}
	if form.Group != 0 {
		member.GroupID = &form.Group
	}
	if form.Status != 0 {
		member.StatusID = &form.Status
	}

	created, err := h.Members.CreateMember(c.Request.Context(), member)
	if err != nil {
		c.HTML(http.StatusBadGateway, "error.html", gin.H{"Error": h.Members.Err()})
		return
	}

	c.Redirect(http.StatusFound, "/members/"+strconv.FormatInt(created.ID, 10))
}

func (h *WebController) MemberEdit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Error": "invalid member id"})
		return
	}

	var form memberForm
	if err := h.decodeForm(c, &form); err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Error": err.Error()})
		return
	}

	patch, err := form.patch()
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Error": err.Error()})
		return
	}

	if _, err := h.Members.UpdateMember(c.Request.Context(), id, patch); err != nil {
		c.HTML(http.StatusBadGateway, "error.html", gin.H{"Error": h.Members.Err()})
		return
	}

	c.Redirect(http.StatusFound, "/members/"+strconv.FormatInt(id, 10))
}

func (h *WebController) MemberDelete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Error": "invalid member id"})
		return
	}

	if err := h.Members.DeleteMember(c.Request.Context(), id); err != nil {
		c.HTML(http.StatusBadGateway, "error.html", gin.H{"Error": h.Members.Err()})
		return
	}

	c.Redirect(http.StatusFound, "/members")
}

func (h *WebController) ParentsPage(c *gin.Context) {
	var q memberQuery
	if err := decoder.Decode(&q, c.Request.URL.Query()); err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Error": err.Error()})
		return
	}

	if q.Limit <= 0 {
		q.Limit = helpers.MembersPageSize
	}

	params := &api.MemberListParams{Limit: q.Limit, Offset: q.Offset, Search: q.Search, Ordering: q.Ordering}
	if err := h.Parents.FetchParents(c.Request.Context(), params); err != nil {
		c.HTML(http.StatusBadGateway, "error.html", gin.H{"Error": h.Parents.Err()})
		return
	}

	c.HTML(http.StatusOK, "parents.html", gin.H{
		"Parents":    h.Parents.Parents(),
		"Pagination": h.Parents.Pagination(),
		"Query":      q,
	})
}

type parentForm struct {
	Name     string  `schema:"name"`
	Lastname string  `schema:"lastname"`
	Children []int64 `schema:"children"`
	Email    string  `schema:"email"`
	Email2   string  `schema:"email2"`
	Street   string  `schema:"street"`
	ZipCode  string  `schema:"zip_code"`
	City     string  `schema:"city"`
	Phone    string  `schema:"phone"`
	Mobile   string  `schema:"mobile"`
	Notes    string  `schema:"notes"`
}

func (h *WebController) ParentCreate(c *gin.Context) {
	var form parentForm
	if err := h.decodeForm(c, &form); err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Error": err.Error()})
		return
	}

	parent := &entity.Parent{
		Name:     form.Name,
		Lastname: form.Lastname,
		Children: form.Children,
		Email:    form.Email,
		Email2:   form.Email2,
		Street:   form.Street,
		ZipCode:  form.ZipCode,
		City:     form.City,
		Phone:    form.Phone,
		Mobile:   form.Mobile,
		Notes:    form.Notes,
	}

	if _, err := h.Parents.CreateParent(c.Request.Context(), parent); err != nil {
		c.HTML(http.StatusBadGateway, "error.html", gin.H{"Error": h.Parents.Err()})
		return
	}

	c.Redirect(http.StatusFound, "/parents")
}

func (h *WebController) ParentEdit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Error": "invalid parent id"})
		return
	}

	var form parentForm
	if err := h.decodeForm(c, &form); err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Error": err.Error()})
		return
	}

	patch := map[string]any{
		"name":     form.Name,
		"lastname": form.Lastname,
		"email":    form.Email,
		"email2":   form.Email2,
		"street":   form.Street,
		"zip_code": form.ZipCode,
		"city":     form.City,
		"phone":    form.Phone,
		"mobile":   form.Mobile,
		"notes":    form.Notes,
	}
	if len(form.Children) > 0 {
		patch["children"] = form.Children
	}

	if _, err := h.Parents.UpdateParent(c.Request.Context(), id, patch); err != nil {
		c.HTML(http.StatusBadGateway, "error.html", gin.H{"Error": h.Parents.Err()})
		return
	}

	c.Redirect(http.StatusFound, "/parents")
}

func (h *WebController) ProfilePage(c *gin.Context) {
	c.HTML(http.StatusOK, "profile.html", gin.H{"User": h.Auth.User()})
}

func (h *WebController) ProfileUpdate(c *gin.Context) {
	patch := map[string]any{
		"first_name": c.PostForm("first_name"),
		"last_name":  c.PostForm("last_name"),
		"email":      c.PostForm("email"),
	}

	if _, err := h.Auth.UpdateProfile(c.Request.Context(), patch); err != nil {
		c.HTML(http.StatusBadGateway, "error.html", gin.H{"Error": h.Auth.Err()})
		return
	}

	c.Redirect(http.StatusFound, "/profile")
}

func (h *WebController) SettingsPage(c *gin.Context) {
	settings, err := h.API.Settings(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusBadGateway, "error.html", gin.H{"Error": api.ErrorDetail(err, "Failed to fetch settings")})
		return
	}

	c.HTML(http.StatusOK, "settings.html", gin.H{"Settings": settings})
}

func (h *WebController) ServicebookPage(c *gin.Context) {
	page, err := h.API.ListServices(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusBadGateway, "error.html", gin.H{"Error": api.ErrorDetail(err, "Failed to fetch services")})
		return
	}

	c.HTML(http.StatusOK, "servicebook.html", gin.H{"Services": page.Results, "Count": page.Count})
}

func (h *WebController) OrdersPage(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		orders   *entity.Page[entity.Order]
		statuses *entity.Page[entity.OrderStatus]
	)

	errwg := new(errgroup.Group)
	errwg.Go(func() error {
		var err error
		orders, err = h.API.ListOrders(ctx)
		return err
	})
	errwg.Go(func() error {
		var err error
		statuses, err = h.API.ListOrderStatuses(ctx)
		return err
	})

	if err := errwg.Wait(); err != nil {
		c.HTML(http.StatusBadGateway, "error.html", gin.H{"Error": api.ErrorDetail(err, "Failed to fetch orders")})
		return
	}

	c.HTML(http.StatusOK, "orders.html", gin.H{
		"Orders":   orders.Results,
		"Statuses": statuses.Results,
	})
}

func (h *WebController) QualificationsPage(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		qualifications *entity.Page[entity.Qualification]
		types          *entity.Page[entity.QualificationType]
	)

	errwg := new(errgroup.Group)
	errwg.Go(func() error {
		var err error
		qualifications, err = h.API.ListQualifications(ctx, 0)
		return err
	})
	errwg.Go(func() error {
		var err error
		types, err = h.API.ListQualificationTypes(ctx)
		return err
	})

	if err := errwg.Wait(); err != nil {
		c.HTML(http.StatusBadGateway, "error.html", gin.H{"Error": api.ErrorDetail(err, "Failed to fetch qualifications")})
		return
	}

	c.HTML(http.StatusOK, "qualifications.html", gin.H{
		"Qualifications": qualifications.Results,
		"Types":          types.Results,
	})
}

// CalculateExpiry backs the qualification form's live expiry preview.
func (h *WebController) CalculateExpiry(c *gin.Context) {
	typeID, err := strconv.ParseInt(c.Query("type_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid type_id"})
		return
	}

	var acquired entity.Date
	if err := acquired.UnmarshalJSON([]byte(`"` + c.Query("date_acquired") + `"`)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid date_acquired"})
		return
	}

	expires, err := h.API.CalculateExpiry(c.Request.Context(), typeID, acquired)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"detail": api.ErrorDetail(err, "Failed to calculate expiry")})
		return
	}

	c.JSON(http.StatusOK, gin.H{"date_expires": expires})
}

func (h *WebController) decodeForm(c *gin.Context, dst any) error {
	if err := c.Request.ParseForm(); err != nil {
		return err
	}
	return decoder.Decode(dst, c.Request.PostForm)
}
