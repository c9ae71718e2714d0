package world

import (
	"github.com/go-collide/collide/pkg/broadphase"
	"github.com/go-collide/collide/pkg/mathx"
)

// CollisionGroups is spec.md §3's three-bitset membership/whitelist/
// blacklist model. It's the same type broadphase.PairFilter composes
// over (see broadphase.Groups), reused here rather than duplicated so a
// CollisionObject's groups flow straight into the broad phase's filter
// without a conversion step.
type CollisionGroups = broadphase.Groups

// DefaultGroups belongs to every group and accepts every group.
var DefaultGroups = broadphase.DefaultGroups

// QueryKind tags which of GeometricQueryType's two variants a
// CollisionObject requested.
type QueryKind int

const (
	QueryContacts QueryKind = iota
	QueryProximity
)

// GeometricQueryType is spec.md §3's tagged variant: either a
// contacts-generating object with a prediction bubble (and an angular
// prediction for rotational sweep, used by the one-shot manifold
// strategy's perturbation probes) or a proximity-only object with a
// single margin.
type GeometricQueryType struct {
	Kind               QueryKind
	PredictionDistance mathx.Scalar
	AngularPrediction  mathx.Scalar
	Margin             mathx.Scalar
}

// Contacts builds a contacts query type with the given prediction bubble
// and angular prediction.
func Contacts(prediction, angularPrediction mathx.Scalar) GeometricQueryType {
	return GeometricQueryType{Kind: QueryContacts, PredictionDistance: prediction, AngularPrediction: angularPrediction}
}

// Proximity builds a proximity-only query type with the given margin.
func Proximity(margin mathx.Scalar) GeometricQueryType {
	return GeometricQueryType{Kind: QueryProximity, Margin: margin}
}

// bubble returns the distance this query type's bubble extends beyond
// the shape's own surface, whichever variant it is.
func (q GeometricQueryType) bubble() mathx.Scalar {
	if q.Kind == QueryProximity {
		return q.Margin
	}
	return q.PredictionDistance
}
