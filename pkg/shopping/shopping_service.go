package shopping

import (
	"Pantry-Tracker/domain"
	"Pantry-Tracker/entities"
	"Pantry-Tracker/internal/utils"
	"Pantry-Tracker/pkg/food"
	"Pantry-Tracker/pkg/group"
	"Pantry-Tracker/pkg/inventory"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	ShoppingService interface {
		CreateList(ctx context.Context, req domain.CreateShoppingListRequest, userID string) (domain.ShoppingListResponse, error)
		GetLists(ctx context.Context, userID string) ([]domain.ShoppingListResponse, error)
		GetList(ctx context.Context, listID string, userID string) (domain.ShoppingListResponse, error)
		DeleteList(ctx context.Context, listID string, userID string) error
		AddItem(ctx context.Context, listID string, req domain.AddListItemRequest, userID string) (domain.ShoppingListItemResponse, error)
		UpdateItem(ctx context.Context, listID, itemID string, req domain.UpdateListItemRequest, userID string) (domain.ShoppingListItemResponse, error)
		DeleteItem(ctx context.Context, listID, itemID string, userID string) error
		AddLowStockItems(ctx context.Context, listID string, userID string) ([]domain.ShoppingListItemResponse, error)
	}

	shoppingService struct {
		shoppingRepository ShoppingRepository
		groupService       group.GroupService
		foodRepository     food.FoodRepository
		now                func() time.Time
	}
)

func NewShoppingService(
	shoppingRepository ShoppingRepository,
	groupService group.GroupService,
	foodRepository food.FoodRepository,
) ShoppingService {
	return &shoppingService{
		shoppingRepository: shoppingRepository,
		groupService:       groupService,
		foodRepository:     foodRepository,
		now:                time.Now,
	}
}

func toItemResponse(it *entities.ShoppingListItem) domain.ShoppingListItemResponse {
	res := domain.ShoppingListItemResponse{
		ID:        it.ID.String(),
		Name:      it.Name,
		Quantity:  it.Quantity,
		Unit:      it.Unit,
		Category:  it.Category,
		Notes:     it.Notes,
		Checked:   it.Checked,
		CheckedAt: it.CheckedAt,
		AddedBy:   it.AddedBy.String(),
		CreatedAt: it.CreatedAt,
	}
	if it.CheckedBy != nil {
		id := it.CheckedBy.String()
		res.CheckedBy = &id
	}
	if it.FoodItemID != nil {
		id := it.FoodItemID.String()
		res.FoodItemID = &id
	}
	return res
}

func toListResponse(l *entities.ShoppingList, withItems bool) domain.ShoppingListResponse {
	res := domain.ShoppingListResponse{
		ID:        l.ID.String(),
		GroupID:   l.GroupID.String(),
		Name:      l.Name,
		CreatedBy: l.CreatedBy.String(),
		ItemCount: len(l.Items),
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
	if withItems {
		res.Items = make([]domain.ShoppingListItemResponse, 0, len(l.Items))
	}
	for _, it := range l.Items {
		if it.Checked {
			res.CompletedCount++
		}
		if withItems {
			res.Items = append(res.Items, toItemResponse(it))
		}
	}
	return res
}

func (s *shoppingService) requireMember(ctx context.Context, groupID, userID string) error {
	ok, err := s.groupService.IsMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotGroupMember
	}
	return nil
}

// getList loads a list the user may edit through group membership.
func (s *shoppingService) getList(ctx context.Context, listID, userID string) (*entities.ShoppingList, error) {
	if _, err := uuid.Parse(listID); err != nil {
		return nil, domain.ErrShoppingListNotFound
	}
	list, err := s.shoppingRepository.GetListByID(ctx, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShoppingListNotFound
		}
		return nil, err
	}
	if err := s.requireMember(ctx, list.GroupID.String(), userID); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *shoppingService) getItem(ctx context.Context, list *entities.ShoppingList, itemID string) (*entities.ShoppingListItem, error) {
	if _, err := uuid.Parse(itemID); err != nil {
		return nil, domain.ErrListItemNotFound
	}
	item, err := s.shoppingRepository.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListItemNotFound
		}
		return nil, err
	}
	if item.ListID != list.ID {
		return nil, domain.ErrListItemNotFound
	}
	return item, nil
}

func (s *shoppingService) touch(ctx context.Context, listID string) {
	if err := s.shoppingRepository.TouchList(ctx, listID); err != nil {
		utils.LogError("shopping", "touch", "updating list timestamp", listID, err)
	}
}

func (s *shoppingService) CreateList(ctx context.Context, req domain.CreateShoppingListRequest, userID string) (domain.ShoppingListResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ShoppingListResponse{}, domain.ErrParseUUID
	}
	groupUUID, err := uuid.Parse(req.GroupID)
	if err != nil {
		return domain.ShoppingListResponse{}, domain.ErrGroupNotFound
	}
	if err := s.requireMember(ctx, req.GroupID, userID); err != nil {
		return domain.ShoppingListResponse{}, err
	}

	now := s.now()
	list := &entities.ShoppingList{
		ID:        uuid.New(),
		GroupID:   groupUUID,
		Name:      strings.TrimSpace(req.Name),
		CreatedBy: userUUID,
	}
	list.CreatedAt, list.UpdatedAt = now, now

	if err := s.shoppingRepository.CreateList(ctx, list); err != nil {
		return domain.ShoppingListResponse{}, err
	}
	return toListResponse(list, true), nil
}

func (s *shoppingService) GetLists(ctx context.Context, userID string) ([]domain.ShoppingListResponse, error) {
	lists, err := s.shoppingRepository.GetListsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := make([]domain.ShoppingListResponse, 0, len(lists))
	for _, l := range lists {
		res = append(res, toListResponse(l, false))
	}
	return res, nil
}

func (s *shoppingService) GetList(ctx context.Context, listID string, userID string) (domain.ShoppingListResponse, error) {
	list, err := s.getList(ctx, listID, userID)
	if err != nil {
		return domain.ShoppingListResponse{}, err
	}
	return toListResponse(list, true), nil
}

func (s *shoppingService) DeleteList(ctx context.Context, listID string, userID string) error {
	list, err := s.getList(ctx, listID, userID)
	if err != nil {
		return err
	}
	return s.shoppingRepository.DeleteList(ctx, list.ID.String())
}

func (s *shoppingService) AddItem(ctx context.Context, listID string, req domain.AddListItemRequest, userID string) (domain.ShoppingListItemResponse, error) {
	list, err := s.getList(ctx, listID, userID)
	if err != nil {
		return domain.ShoppingListItemResponse{}, err
	}
	if req.Quantity.IsNegative() {
		return domain.ShoppingListItemResponse{}, domain.ErrInvalidQuantity
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ShoppingListItemResponse{}, domain.ErrParseUUID
	}

	item := &entities.ShoppingListItem{
		ID:       uuid.New(),
		ListID:   list.ID,
		Name:     strings.TrimSpace(req.Name),
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Category: req.Category,
		Notes:    req.Notes,
		AddedBy:  userUUID,
	}
	item.CreatedAt = s.now()

	if err := s.shoppingRepository.AddItems(ctx, []*entities.ShoppingListItem{item}); err != nil {
		return domain.ShoppingListItemResponse{}, err
	}
	s.touch(ctx, listID)
	return toItemResponse(item), nil
}

func (s *shoppingService) UpdateItem(ctx context.Context, listID, itemID string, req domain.UpdateListItemRequest, userID string) (domain.ShoppingListItemResponse, error) {
	list, err := s.getList(ctx, listID, userID)
	if err != nil {
		return domain.ShoppingListItemResponse{}, err
	}
	item, err := s.getItem(ctx, list, itemID)
	if err != nil {
		return domain.ShoppingListItemResponse{}, err
	}

	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Quantity != nil {
		if req.Quantity.IsNegative() {
			return domain.ShoppingListItemResponse{}, domain.ErrInvalidQuantity
		}
		item.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}
	if req.Checked != nil && *req.Checked != item.Checked {
		item.Checked = *req.Checked
		if item.Checked {
			userUUID, err := uuid.Parse(userID)
			if err != nil {
				return domain.ShoppingListItemResponse{}, domain.ErrParseUUID
			}
			now := s.now()
			item.CheckedBy = &userUUID
			item.CheckedAt = &now
		} else {
			item.CheckedBy = nil
			item.CheckedAt = nil
		}
	}

	if err := s.shoppingRepository.UpdateItem(ctx, item); err != nil {
		return domain.ShoppingListItemResponse{}, err
	}
	s.touch(ctx, listID)
	return toItemResponse(item), nil
}

func (s *shoppingService) DeleteItem(ctx context.Context, listID, itemID string, userID string) error {
	list, err := s.getList(ctx, listID, userID)
	if err != nil {
		return err
	}
	item, err := s.getItem(ctx, list, itemID)
	if err != nil {
		return err
	}
	if err := s.shoppingRepository.DeleteItem(ctx, item.ID.String()); err != nil {
		return err
	}
	s.touch(ctx, listID)
	return nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// restockQuantity is what to buy: the alert threshold for low stock, the same amount again otherwise.
func restockQuantity(item domain.FoodItem, status inventory.Status) decimal.Decimal {
	q := item.Quantity
	if status == inventory.StatusLowStock {
		q = item.LowStockThreshold
	}
	if !q.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return q
}

func (s *shoppingService) AddLowStockItems(ctx context.Context, listID string, userID string) ([]domain.ShoppingListItemResponse, error) {
	list, err := s.getList(ctx, listID, userID)
	if err != nil {
		return nil, err
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	pending := make(map[string]bool, len(list.Items))
	for _, it := range list.Items {
		if !it.Checked {
			pending[normalizeName(it.Name)] = true
		}
	}

	rows, err := s.foodRepository.GetFoodItemsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var toAdd []*entities.ShoppingListItem
	for i, row := range rows {
		item := food.ToFoodItem(row)
		c, err := inventory.Classify(item, now)
		if err != nil {
			utils.LogError("shopping", "AddLowStockItems", "classifying item", item.ID, err)
			continue
		}
		if c.Status != inventory.StatusLowStock && c.Status != inventory.StatusExpired {
			continue
		}
		name := normalizeName(item.Name)
		if pending[name] {
			continue
		}
		pending[name] = true

		foodID := row.ID
		entry := &entities.ShoppingListItem{
			ID:         uuid.New(),
			ListID:     list.ID,
			Name:       item.Name,
			Quantity:   restockQuantity(item, c.Status),
			Unit:       item.Unit,
			Category:   item.Category,
			Notes:      string(c.Status),
			AddedBy:    userUUID,
			FoodItemID: &foodID,
		}
		entry.CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
		toAdd = append(toAdd, entry)
	}

	if err := s.shoppingRepository.AddItems(ctx, toAdd); err != nil {
		return nil, err
	}
	if len(toAdd) > 0 {
		s.touch(ctx, listID)
	}

	res := make([]domain.ShoppingListItemResponse, 0, len(toAdd))
	for _, it := range toAdd {
		res = append(res, toItemResponse(it))
	}
	return res, nil
}
