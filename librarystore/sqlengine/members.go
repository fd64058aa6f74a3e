package sqlengine

import (
	"context"
	"errors"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
	"github.com/AntonStoeckl/library-exercises-go/librarystore/sqlengine/internal/adapters"
)

const (
	operationAddMember         = "add_member"
	operationMemberByID        = "member_by_id"
	operationSearchMembers     = "search_members"
	operationAllMembers        = "all_members"
	operationCountMembers      = "count_members"
	operationUpdateMember      = "update_member"
	operationDeleteMember      = "delete_member"
	operationMemberOverdueDays = "member_overdue_days"
)

func memberColumns() []any {
	return []any{
		goqu.C(colMemberID), goqu.C(colName), goqu.C(colPhone), goqu.C(colAddress), goqu.C(colRegistrationDate),
	}
}

func scanMember(rows adapters.DBRows) (librarystore.Member, error) {
	var m librarystore.Member

	err := rows.Scan(&m.ID, &m.Name, &m.Phone, &m.Address, &m.RegistrationDate)

	return m, err
}

// AddMember stores a new member and returns the member id. Name and registration date are required.
func (s Store) AddMember(ctx context.Context, member librarystore.NewMember) (librarystore.MemberID, error) {
	var id librarystore.MemberID

	err := s.observed(ctx, operationAddMember, func(ctx context.Context) (int, error) {
		name := strings.TrimSpace(member.Name)
		if name == "" {
			return 0, errors.Join(librarystore.ErrMissingRequiredField, errors.New("name is required"))
		}

		if !librarystore.IsValidDate(member.RegistrationDate) {
			return 0, librarystore.ErrInvalidDate
		}

		var err error
		id, err = s.insertReturningID(ctx, s.db, operationAddMember, tableMembers, colMemberID, goqu.Record{
			colName:             name,
			colPhone:            member.Phone,
			colAddress:          member.Address,
			colRegistrationDate: member.RegistrationDate,
		})
		if err != nil {
			return 0, err
		}

		return 1, nil
	})

	return id, err
}

// MemberByID returns the member with the given id or ErrMemberNotFound.
func (s Store) MemberByID(ctx context.Context, id librarystore.MemberID) (librarystore.Member, error) {
	var member librarystore.Member

	err := s.observed(ctx, operationMemberByID, func(ctx context.Context) (int, error) {
		members, err := s.selectMembers(ctx, operationMemberByID, 0, goqu.C(colMemberID).Eq(id))
		if err != nil {
			return 0, err
		}

		if len(members) == 0 {
			return 0, librarystore.ErrMemberNotFound
		}

		member = members[0]

		return 1, nil
	})

	return member, err
}

// SearchMembersByName returns up to limit members whose name contains the given text, ignoring case.
// A limit of zero or less means no limit.
func (s Store) SearchMembersByName(ctx context.Context, name string, limit int) ([]librarystore.Member, error) {
	var members []librarystore.Member

	err := s.observed(ctx, operationSearchMembers, func(ctx context.Context) (int, error) {
		var err error
		members, err = s.selectMembers(ctx, operationSearchMembers, limit, goqu.C(colName).ILike(containsPattern(name)))

		return len(members), err
	})

	return members, err
}

// AllMembers returns every member ordered by id.
func (s Store) AllMembers(ctx context.Context) ([]librarystore.Member, error) {
	var members []librarystore.Member

	err := s.observed(ctx, operationAllMembers, func(ctx context.Context) (int, error) {
		var err error
		members, err = s.selectMembers(ctx, operationAllMembers, 0)

		return len(members), err
	})

	return members, err
}

// CountMembers returns the number of registered members.
func (s Store) CountMembers(ctx context.Context) (int, error) {
	var n int

	err := s.observed(ctx, operationCountMembers, func(ctx context.Context) (int, error) {
		var err error
		n, err = s.count(ctx, s.db, operationCountMembers,
			s.builder().From(tableMembers).Select(goqu.COUNT(goqu.Star())).Prepared(true))

		return 1, err
	})

	return n, err
}

// UpdateMember applies a partial update.
// An empty patch returns ErrNoFieldsToUpdate, an unknown id ErrMemberNotFound.
func (s Store) UpdateMember(ctx context.Context, id librarystore.MemberID, patch librarystore.MemberPatch) error {
	return s.observed(ctx, operationUpdateMember, func(ctx context.Context) (int, error) {
		if patch.IsEmpty() {
			return 0, librarystore.ErrNoFieldsToUpdate
		}

		record := goqu.Record{}
		if patch.Name != nil {
			record[colName] = *patch.Name
		}
		if patch.Phone != nil {
			record[colPhone] = *patch.Phone
		}
		if patch.Address != nil {
			record[colAddress] = *patch.Address
		}

		update := s.builder().Update(tableMembers).Set(record).Where(goqu.C(colMemberID).Eq(id)).Prepared(true)

		_, rowsAffected, err := s.exec(ctx, s.db, operationUpdateMember, update)
		if err != nil {
			return 0, err
		}

		if rowsAffected == 0 {
			return 0, librarystore.ErrMemberNotFound
		}

		return int(rowsAffected), nil
	})
}

// DeleteMember removes a member without any loan history.
// An unknown id returns ErrMemberNotFound, a member with loans ErrMemberHasLoans.
func (s Store) DeleteMember(ctx context.Context, id librarystore.MemberID) error {
	return s.observed(ctx, operationDeleteMember, func(ctx context.Context) (int, error) {
		loanCount, err := s.count(ctx, s.db, operationDeleteMember,
			s.builder().From(tableLoans).Select(goqu.COUNT(goqu.Star())).Where(goqu.C(colMemberID).Eq(id)).Prepared(true))
		if err != nil {
			return 0, err
		}

		if loanCount > 0 {
			return 0, librarystore.ErrMemberHasLoans
		}

		_, rowsAffected, err := s.exec(ctx, s.db, operationDeleteMember,
			s.builder().Delete(tableMembers).Where(goqu.C(colMemberID).Eq(id)).Prepared(true))
		if err != nil {
			return 0, err
		}

		if rowsAffected == 0 {
			return 0, librarystore.ErrMemberNotFound
		}

		return int(rowsAffected), nil
	})
}

// MemberOverdueDays returns the largest number of days any unreturned loan of the member is overdue as of asOf.
// It returns 0 when the member has no overdue loans.
func (s Store) MemberOverdueDays(
	ctx context.Context,
	id librarystore.MemberID,
	asOf librarystore.DateString,
) (int, error) {

	var overdueDays int

	err := s.observed(ctx, operationMemberOverdueDays, func(ctx context.Context) (int, error) {
		if !librarystore.IsValidDate(asOf) {
			return 0, librarystore.ErrInvalidDate
		}

		selectStmt := s.builder().From(tableLoans).
			Select(goqu.C(colDueDate)).
			Where(
				goqu.C(colMemberID).Eq(id),
				goqu.C(colIsReturned).Eq(flagFalse),
				goqu.C(colDueDate).Lt(asOf),
			).
			Prepared(true)

		rowCount := 0
		err := s.query(ctx, s.db, operationMemberOverdueDays, selectStmt, func(rows adapters.DBRows) error {
			var dueDate librarystore.DateString
			if err := rows.Scan(&dueDate); err != nil {
				return err
			}

			days, err := librarystore.OverdueDays(dueDate, asOf)
			if err != nil {
				return err
			}

			overdueDays = max(overdueDays, days)
			rowCount++

			return nil
		})

		return rowCount, err
	})

	return overdueDays, err
}

// selectMembers returns the members matching all conditions, ordered by id, limited when limit > 0.
func (s Store) selectMembers(
	ctx context.Context,
	action string,
	limit int,
	conditions ...exp.Expression,
) ([]librarystore.Member, error) {

	members := make([]librarystore.Member, 0)

	selectStmt := s.builder().From(tableMembers).Select(memberColumns()...).Order(goqu.C(colMemberID).Asc()).Prepared(true)
	if len(conditions) > 0 {
		selectStmt = selectStmt.Where(conditions...)
	}

	if limit > 0 {
		selectStmt = selectStmt.Limit(uint(limit))
	}

	err := s.query(ctx, s.db, action, selectStmt, func(rows adapters.DBRows) error {
		member, err := scanMember(rows)
		if err != nil {
			return err
		}

		members = append(members, member)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return members, nil
}
