package minikanren

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainRangeAndCount(t *testing.T) {
	d := DomainRange(1, 4)
	assert.Equal(t, 4, d.Count())
	assert.True(t, d.Has(1))
	assert.True(t, d.Has(4))
	assert.False(t, d.Has(5))
}

func TestNewDomainDedupsAndSorts(t *testing.T) {
	d := NewDomain(3, 1, 3, 2)
	assert.Equal(t, []int{1, 2, 3}, d.Values())
}

func TestDomainIntersect(t *testing.T) {
	a := DomainRange(1, 5)
	b := DomainRange(3, 8)
	got := a.Intersect(b)
	assert.Equal(t, []int{3, 4, 5}, got.Values())
}

func TestDomainIntersectEmpty(t *testing.T) {
	a := DomainRange(1, 2)
	b := DomainRange(3, 4)
	assert.True(t, a.Intersect(b).IsEmpty())
}

func TestDomainRemoveBelowAndAbove(t *testing.T) {
	d := DomainRange(1, 10)
	assert.Equal(t, []int{5, 6, 7, 8, 9, 10}, d.RemoveBelow(5).Values())
	assert.Equal(t, []int{1, 2, 3}, d.RemoveAbove(3).Values())
}

func TestDomainSingleton(t *testing.T) {
	d := NewDomain(7)
	assert.True(t, d.IsSingleton())
	assert.Equal(t, 7, d.SingletonValue())
}

func TestDomainSubsetAndEqual(t *testing.T) {
	a := NewDomain(1, 2)
	b := NewDomain(1, 2, 3)
	assert.True(t, a.Subset(b))
	assert.False(t, b.Subset(a))
	assert.True(t, a.Equal(NewDomain(2, 1)))
}

func TestDomainString(t *testing.T) {
	assert.Equal(t, "{1,2,3}", NewDomain(1, 2, 3).String())
	assert.Equal(t, "{}", NewDomain().String())
}
