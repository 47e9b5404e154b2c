package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Shops() ShopRepository
	Orders() OrderRepository
	Milestones() MilestoneRepository
	Tasks() TaskRepository
	Wallets() WalletRepository
	Transactions() TransactionRepository
	Memberships() MembershipRepository
	Subscriptions() SubscriptionRepository
	UpdateRequests() UpdateRequestRepository
}
