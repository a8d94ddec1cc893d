package posts

import "sort"

// RankComments orders comments by likes plus retweets, then by their own
// comment count, both descending. True ties keep their paginated order.
func RankComments(comments []*ExtendedPost) []*ExtendedPost {
	sort.SliceStable(comments, func(i, j int) bool {
		si, sj := comments[i].Score(), comments[j].Score()
		if si != sj {
			return si > sj
		}
		return comments[i].CommentCount > comments[j].CommentCount
	})
	return comments
}
