package creditmanager

import (
	"context"
	"time"

	"gearbox/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type fakePoolStore struct {
	pools  map[string]*core.Pool
	shares map[string]*core.PoolShare
}

func newFakePoolStore() *fakePoolStore {
	return &fakePoolStore{
		pools:  make(map[string]*core.Pool),
		shares: make(map[string]*core.PoolShare),
	}
}

func (s *fakePoolStore) Save(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	p := *pool
	s.pools[pool.AssetID] = &p
	return nil
}

func (s *fakePoolStore) Find(ctx context.Context, assetID string) (*core.Pool, error) {
	pool, ok := s.pools[assetID]
	if !ok {
		return nil, core.ErrPoolNotFound
	}
	p := *pool
	return &p, nil
}

func (s *fakePoolStore) FindBySymbol(ctx context.Context, symbol string) (*core.Pool, error) {
	for _, pool := range s.pools {
		if pool.Symbol == symbol {
			p := *pool
			return &p, nil
		}
	}
	return nil, core.ErrPoolNotFound
}

func (s *fakePoolStore) All(ctx context.Context) ([]*core.Pool, error) {
	var pools []*core.Pool
	for _, pool := range s.pools {
		p := *pool
		pools = append(pools, &p)
	}
	return pools, nil
}

func (s *fakePoolStore) Update(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	p := *pool
	s.pools[pool.AssetID] = &p
	return nil
}

func (s *fakePoolStore) SaveShare(ctx context.Context, tx *db.DB, share *core.PoolShare) error {
	sh := *share
	sh.ID = uint64(len(s.shares) + 1)
	s.shares[share.AssetID+share.Provider] = &sh
	return nil
}

func (s *fakePoolStore) FindShare(ctx context.Context, assetID, provider string) (*core.PoolShare, error) {
	if share, ok := s.shares[assetID+provider]; ok {
		sh := *share
		return &sh, nil
	}
	return &core.PoolShare{AssetID: assetID, Provider: provider}, nil
}

func (s *fakePoolStore) UpdateShare(ctx context.Context, tx *db.DB, share *core.PoolShare) error {
	sh := *share
	s.shares[share.AssetID+share.Provider] = &sh
	return nil
}

type fakeAccountStore struct {
	accounts map[string]*core.CreditAccount
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: make(map[string]*core.CreditAccount)}
}

func (s *fakeAccountStore) Create(ctx context.Context, tx *db.DB, account *core.CreditAccount) error {
	a := *account
	s.accounts[account.Trace] = &a
	return nil
}

func (s *fakeAccountStore) FindActiveByOwner(ctx context.Context, owner string) (*core.CreditAccount, error) {
	for _, account := range s.accounts {
		if account.Owner == owner && account.IsActive() {
			a := *account
			return &a, nil
		}
	}
	return nil, core.ErrAccountNotFound
}

func (s *fakeAccountStore) FindByTrace(ctx context.Context, trace string) (*core.CreditAccount, error) {
	account, ok := s.accounts[trace]
	if !ok {
		return nil, core.ErrAccountNotFound
	}
	a := *account
	return &a, nil
}

func (s *fakeAccountStore) AllActive(ctx context.Context) ([]*core.CreditAccount, error) {
	var accounts []*core.CreditAccount
	for _, account := range s.accounts {
		if account.IsActive() {
			a := *account
			accounts = append(accounts, &a)
		}
	}
	return accounts, nil
}

func (s *fakeAccountStore) Update(ctx context.Context, tx *db.DB, account *core.CreditAccount) error {
	a := *account
	s.accounts[account.Trace] = &a
	return nil
}

type fakeBalanceStore struct {
	balances map[string]map[string]decimal.Decimal
}

func newFakeBalanceStore() *fakeBalanceStore {
	return &fakeBalanceStore{balances: make(map[string]map[string]decimal.Decimal)}
}

func (s *fakeBalanceStore) get(holderID, assetID string) decimal.Decimal {
	if held, ok := s.balances[holderID]; ok {
		return held[assetID]
	}
	return decimal.Zero
}

func (s *fakeBalanceStore) set(holderID, assetID string, amount decimal.Decimal) {
	held, ok := s.balances[holderID]
	if !ok {
		held = make(map[string]decimal.Decimal)
		s.balances[holderID] = held
	}
	held[assetID] = amount
}

func (s *fakeBalanceStore) Find(ctx context.Context, tx *db.DB, holderID, assetID string) (*core.Balance, error) {
	return &core.Balance{HolderID: holderID, AssetID: assetID, Amount: s.get(holderID, assetID)}, nil
}

func (s *fakeBalanceStore) FindByHolder(ctx context.Context, tx *db.DB, holderID string) ([]*core.Balance, error) {
	var balances []*core.Balance
	for assetID, amount := range s.balances[holderID] {
		balances = append(balances, &core.Balance{HolderID: holderID, AssetID: assetID, Amount: amount})
	}
	return balances, nil
}

func (s *fakeBalanceStore) Add(ctx context.Context, tx *db.DB, holderID, assetID string, amount decimal.Decimal) error {
	next := s.get(holderID, assetID).Add(amount)
	if next.IsNegative() {
		return core.ErrInvalidAmount
	}
	s.set(holderID, assetID, next)
	return nil
}

func (s *fakeBalanceStore) Transfer(ctx context.Context, tx *db.DB, from, to, assetID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}
	if err := s.Add(ctx, tx, from, assetID, amount.Neg()); err != nil {
		return err
	}
	return s.Add(ctx, tx, to, assetID, amount)
}

type fakeFilterStore struct {
	contracts map[string]string
	tokens    map[string]bool
}

func newFakeFilterStore() *fakeFilterStore {
	return &fakeFilterStore{
		contracts: make(map[string]string),
		tokens:    make(map[string]bool),
	}
}

func (s *fakeFilterStore) SaveContract(ctx context.Context, tx *db.DB, entry *core.AllowedContract) error {
	s.contracts[entry.TargetID] = entry.AdapterID
	return nil
}

func (s *fakeFilterStore) DeleteContract(ctx context.Context, tx *db.DB, targetID string) error {
	delete(s.contracts, targetID)
	return nil
}

func (s *fakeFilterStore) FindContract(ctx context.Context, targetID string) (*core.AllowedContract, error) {
	adapterID, ok := s.contracts[targetID]
	if !ok {
		return nil, core.ErrUnauthorizedTarget
	}
	return &core.AllowedContract{TargetID: targetID, AdapterID: adapterID}, nil
}

func (s *fakeFilterStore) AllContracts(ctx context.Context) ([]*core.AllowedContract, error) {
	var entries []*core.AllowedContract
	for target, adapter := range s.contracts {
		entries = append(entries, &core.AllowedContract{TargetID: target, AdapterID: adapter})
	}
	return entries, nil
}

func (s *fakeFilterStore) SaveToken(ctx context.Context, tx *db.DB, token *core.AllowedToken) error {
	s.tokens[token.AssetID] = true
	return nil
}

func (s *fakeFilterStore) DeleteToken(ctx context.Context, tx *db.DB, assetID string) error {
	delete(s.tokens, assetID)
	return nil
}

func (s *fakeFilterStore) FindToken(ctx context.Context, assetID string) (*core.AllowedToken, error) {
	if !s.tokens[assetID] {
		return nil, core.ErrTokenNotAllowed
	}
	return &core.AllowedToken{AssetID: assetID}, nil
}

func (s *fakeFilterStore) AllTokens(ctx context.Context) ([]*core.AllowedToken, error) {
	var tokens []*core.AllowedToken
	for assetID := range s.tokens {
		tokens = append(tokens, &core.AllowedToken{AssetID: assetID})
	}
	return tokens, nil
}

type fakePairStore struct {
	pairs map[string]*core.Pair
}

func newFakePairStore() *fakePairStore {
	return &fakePairStore{pairs: make(map[string]*core.Pair)}
}

func (s *fakePairStore) key(a, b string) string {
	if a < b {
		return a + "/" + b
	}
	return b + "/" + a
}

func (s *fakePairStore) Save(ctx context.Context, tx *db.DB, pair *core.Pair) error {
	p := *pair
	s.pairs[s.key(pair.BaseAssetID, pair.QuoteAssetID)] = &p
	return nil
}

func (s *fakePairStore) Find(ctx context.Context, assetA, assetB string) (*core.Pair, error) {
	pair, ok := s.pairs[s.key(assetA, assetB)]
	if !ok {
		return nil, core.ErrPairNotFound
	}
	p := *pair
	return &p, nil
}

func (s *fakePairStore) All(ctx context.Context) ([]*core.Pair, error) {
	var pairs []*core.Pair
	for _, pair := range s.pairs {
		p := *pair
		pairs = append(pairs, &p)
	}
	return pairs, nil
}

func (s *fakePairStore) Update(ctx context.Context, tx *db.DB, pair *core.Pair) error {
	p := *pair
	s.pairs[s.key(pair.BaseAssetID, pair.QuoteAssetID)] = &p
	return nil
}

type fakeTransactionStore struct {
	transactions []*core.Transaction
}

func (s *fakeTransactionStore) Create(ctx context.Context, tx *db.DB, transaction *core.Transaction) error {
	s.transactions = append(s.transactions, transaction)
	return nil
}

func (s *fakeTransactionStore) FindByTraceID(ctx context.Context, traceID string) (*core.Transaction, error) {
	for _, transaction := range s.transactions {
		if transaction.TraceID == traceID {
			return transaction, nil
		}
	}
	return &core.Transaction{}, nil
}

func (s *fakeTransactionStore) List(ctx context.Context, fromID uint64, limit int) ([]*core.Transaction, error) {
	return s.transactions, nil
}

func (s *fakeTransactionStore) ListByUser(ctx context.Context, userID string, limit int) ([]*core.Transaction, error) {
	return s.transactions, nil
}

type fakePriceService struct {
	prices map[string]decimal.Decimal
}

func newFakePriceService() *fakePriceService {
	return &fakePriceService{prices: make(map[string]decimal.Decimal)}
}

func (s *fakePriceService) GetPrice(ctx context.Context, assetID string) (decimal.Decimal, error) {
	price, ok := s.prices[assetID]
	if !ok || !price.IsPositive() {
		return decimal.Zero, core.ErrUnpricedAsset
	}
	return price, nil
}

func (s *fakePriceService) PullPriceTicker(ctx context.Context, assetID string, t time.Time) (*core.PriceTicker, error) {
	return nil, nil
}

func (s *fakePriceService) PullAllPriceTickers(ctx context.Context, t time.Time) ([]*core.PriceTicker, error) {
	return nil, nil
}

type fakeBlockService struct {
	block int64
}

func (s *fakeBlockService) CurrentBlock(ctx context.Context) (int64, error) {
	return s.block, nil
}

func (s *fakeBlockService) GetBlockByTime(ctx context.Context, t time.Time) (int64, error) {
	return s.block, nil
}
