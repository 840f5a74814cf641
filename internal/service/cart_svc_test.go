package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sleepwell_store_v1_202610/internal/core/variant"
	"sleepwell_store_v1_202610/internal/repository"
	"sleepwell_store_v1_202610/pkg/utils"
)

func testLineItem(sku string) variant.LineItem {
	return variant.LineItem{
		ProductID:     7,
		Name:          "Cloud Mattress",
		Brand:         "Sleepwell",
		SKU:           sku,
		CurrentPrice:  decimal.NewFromInt(800),
		OriginalPrice: decimal.NewFromInt(1000),
		Size:          "Queen",
		Color:         "Grey",
		Quantity:      1,
		FreeGift:      &variant.GiftRef{ProductID: 9, Name: "Cloud Pillow"},
	}
}

func TestCartService_DispatchLocal(t *testing.T) {
	db := setupServiceTestDB(t)
	repo := repository.NewCartRepository(db)
	svc := NewCartService(NewLocalCartStore(repo), repo, nil, time.Second, zap.NewNop())

	svc.Dispatch(CartLine{CartID: "cart-1", SessionID: "s1", Item: testLineItem("CM-Q-G")})
	svc.Wait()
	svc.Dispatch(CartLine{CartID: "cart-1", SessionID: "s2", Item: testLineItem("CM-Q-G")})
	svc.Dispatch(CartLine{CartID: "cart-1", SessionID: "s3", Item: testLineItem("CM-K-G")})
	svc.Wait()

	cart, err := svc.ListItems(context.Background(), "cart-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	// 同一 SKU 累加数量
	assert.Equal(t, "CM-Q-G", cart.Items[0].SKU)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.True(t, decimal.NewFromInt(800).Equal(cart.Items[0].UnitPrice))
	require.NotNil(t, cart.Items[0].Item)
	assert.Equal(t, "Queen", cart.Items[0].Item.Size)
	require.NotNil(t, cart.Items[0].Item.FreeGift)
	assert.Equal(t, int64(9), cart.Items[0].Item.FreeGift.ProductID)

	other, err := svc.ListItems(context.Background(), "cart-2")
	require.NoError(t, err)
	assert.Empty(t, other.Items)
}

func TestRemoteCartStore_AddItem(t *testing.T) {
	var gotPath, gotSession string
	var got variant.LineItem
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSession = r.Header.Get("X-Selection-Session")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	store := NewRemoteCartStore(utils.NewServiceClient(server.URL, time.Second))
	err := store.AddItem(context.Background(), CartLine{CartID: "c1", SessionID: "s1", Item: testLineItem("CM-Q-G")})
	require.NoError(t, err)

	assert.Equal(t, "/carts/c1/items", gotPath)
	assert.Equal(t, "s1", gotSession)
	assert.Equal(t, "CM-Q-G", got.SKU)
	assert.True(t, decimal.NewFromInt(800).Equal(got.CurrentPrice))
}

func TestRemoteCartStore_ErrorNotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	store := NewRemoteCartStore(utils.NewServiceClient(server.URL, time.Second))
	err := store.AddItem(context.Background(), CartLine{CartID: "c1", Item: testLineItem("X")})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestNewCartStore(t *testing.T) {
	store, err := NewCartStore(&CartStoreConfig{Kind: "local"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "local", store.Name())

	_, err = NewCartStore(&CartStoreConfig{Kind: "remote"}, nil)
	assert.Error(t, err)

	store, err = NewCartStore(&CartStoreConfig{Kind: "remote", URL: "http://cart.internal"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "remote", store.Name())

	_, err = NewCartStore(&CartStoreConfig{Kind: "redis"}, nil)
	assert.Error(t, err)
}

func TestCartService_SameSKUDifferentDepthKeepsSeparateLines(t *testing.T) {
	db := setupServiceTestDB(t)
	repo := repository.NewCartRepository(db)
	svc := NewCartService(NewLocalCartStore(repo), repo, nil, time.Second, zap.NewNop())

	// 深度不参与解析，两次选择落在同一 SKU
	shallow := testLineItem("Q-10")
	shallow.Depth = "10in"
	deep := testLineItem("Q-10")
	deep.Depth = "12in"

	svc.Dispatch(CartLine{CartID: "c1", SessionID: "s1", Item: shallow})
	svc.Wait()
	svc.Dispatch(CartLine{CartID: "c1", SessionID: "s2", Item: deep})
	svc.Wait()
	again := testLineItem("Q-10")
	again.Depth = "10IN"
	svc.Dispatch(CartLine{CartID: "c1", SessionID: "s3", Item: again})
	svc.Wait()

	cart, err := svc.ListItems(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	depths := map[string]int{}
	for _, row := range cart.Items {
		assert.Equal(t, "Q-10", row.SKU)
		require.NotNil(t, row.Item)
		depths[row.Item.Depth] = row.Quantity
	}
	// 大小写不同视为同一选择，快照取最后一次写入
	assert.Equal(t, map[string]int{"10IN": 2, "12in": 1}, depths)
}

func TestCartService_ListItemsResignsImages(t *testing.T) {
	db := setupServiceTestDB(t)
	repo := repository.NewCartRepository(db)
	storage := NewStorageServiceWithProvider(&stubImages{prefix: "https://signed.test"})
	svc := NewCartService(NewLocalCartStore(repo), repo, storage, time.Second, zap.NewNop())

	item := testLineItem("CM-Q-G")
	item.Image = "https://bucket.s3.test/products/mattress/cover.jpg?X-Amz-Signature=old"
	item.ImageKey = "products/mattress/cover.jpg"
	item.FreeGift.Image = "https://bucket.s3.test/products/pillow/cover.jpg?X-Amz-Signature=old"
	item.FreeGift.ImageKey = "products/pillow/cover.jpg"
	svc.Dispatch(CartLine{CartID: "c1", SessionID: "s1", Item: item})

	// 没有存储路径的快照保留原地址
	legacy := testLineItem("CM-K-G")
	legacy.Image = "https://cdn.other/king.jpg"
	svc.Dispatch(CartLine{CartID: "c1", SessionID: "s2", Item: legacy})
	svc.Wait()

	cart, err := svc.ListItems(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	got := cart.Items[0].Item
	require.NotNil(t, got)
	assert.Equal(t, "https://signed.test/products/mattress/cover.jpg", got.Image)
	require.NotNil(t, got.FreeGift)
	assert.Equal(t, "https://signed.test/products/pillow/cover.jpg", got.FreeGift.Image)
	assert.Equal(t, "https://cdn.other/king.jpg", cart.Items[1].Item.Image)

	// 签名失败时退回快照里的地址
	failing := NewCartService(NewLocalCartStore(repo), repo, NewStorageServiceWithProvider(&stubImages{err: errSigning}), time.Second, zap.NewNop())
	cart, err = failing.ListItems(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, item.Image, cart.Items[0].Item.Image)
}
