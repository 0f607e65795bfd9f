package consts

const (
	// HomeMessage GET / 返回的提示
	HomeMessage = "Blog API is running"
	// PostDeletedMessage 删除帖子成功提示
	PostDeletedMessage = "Post deleted successfully"
)

const (
	EventPostCreated = "post.created"
	EventPostUpdated = "post.updated"
	EventPostDeleted = "post.deleted"
	EventTagsCleaned = "tags.cleaned"
)
