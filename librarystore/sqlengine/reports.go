package sqlengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
	"github.com/AntonStoeckl/library-exercises-go/librarystore/sqlengine/internal/adapters"
)

const (
	operationPopularBooks = "popular_books"
	operationInventory    = "inventory"
	operationMemberStats  = "member_stats"
)

// PopularBooks returns up to limit books ranked by how often they were lent, including books never lent.
// Ties are ordered by book id. A limit of zero or less means no limit.
func (s Store) PopularBooks(ctx context.Context, limit int) ([]librarystore.PopularBook, error) {
	popular := make([]librarystore.PopularBook, 0)

	err := s.observed(ctx, operationPopularBooks, func(ctx context.Context) (int, error) {
		selectStmt := s.builder().
			From(goqu.T(tableBooks).As(aliasBooks)).
			LeftJoin(goqu.T(tableLoans).As(aliasLoans),
				goqu.On(goqu.I(aliasBooks+"."+colBookID).Eq(goqu.I(aliasLoans+"."+colBookID)))).
			Select(
				goqu.I(aliasBooks+"."+colBookID),
				goqu.I(aliasBooks+"."+colTitle),
				goqu.I(aliasBooks+"."+colAuthor),
				goqu.COUNT(goqu.I(aliasLoans+"."+colLoanID)).As(aliasLoanCount),
			).
			GroupBy(
				goqu.I(aliasBooks+"."+colBookID),
				goqu.I(aliasBooks+"."+colTitle),
				goqu.I(aliasBooks+"."+colAuthor),
			).
			Order(goqu.C(aliasLoanCount).Desc(), goqu.I(aliasBooks+"."+colBookID).Asc()).
			Prepared(true)

		if limit > 0 {
			selectStmt = selectStmt.Limit(uint(limit))
		}

		err := s.query(ctx, s.db, operationPopularBooks, selectStmt, func(rows adapters.DBRows) error {
			var book librarystore.PopularBook
			if err := rows.Scan(&book.BookID, &book.Title, &book.Author, &book.LoanCount); err != nil {
				return err
			}

			popular = append(popular, book)

			return nil
		})

		return len(popular), err
	})
	if err != nil {
		return nil, err
	}

	return popular, nil
}

// Inventory returns every book with its total and available copies.
func (s Store) Inventory(ctx context.Context) ([]librarystore.Book, error) {
	return s.observedBooks(ctx, operationInventory)
}

// MemberStats counts all members and the members holding at least one loan overdue as of asOf.
func (s Store) MemberStats(ctx context.Context, asOf librarystore.DateString) (librarystore.MemberStats, error) {
	var stats librarystore.MemberStats

	err := s.observed(ctx, operationMemberStats, func(ctx context.Context) (int, error) {
		if !librarystore.IsValidDate(asOf) {
			return 0, librarystore.ErrInvalidDate
		}

		total, err := s.count(ctx, s.db, operationMemberStats,
			s.builder().From(tableMembers).Select(goqu.COUNT(goqu.Star())).Prepared(true))
		if err != nil {
			return 0, err
		}

		withOverdue, err := s.count(ctx, s.db, operationMemberStats,
			s.builder().From(tableLoans).
				Select(goqu.COUNT(goqu.DISTINCT(goqu.C(colMemberID)))).
				Where(
					goqu.C(colIsReturned).Eq(flagFalse),
					goqu.C(colDueDate).Lt(asOf),
				).
				Prepared(true))
		if err != nil {
			return 0, err
		}

		stats = librarystore.MemberStats{TotalMembers: total, MembersWithOverdue: withOverdue}

		return 2, nil
	})

	return stats, err
}
