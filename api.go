package wv

// This file is the flattened operation table: one exported function per
// operation, grouped by category, each taking a *Store and primitive
// arguments. It is
// the boundary a C-ABI or managed-runtime binding would sit behind (out of
// scope here), mirroring the split between an engine file and its call
// surface.

// NewEntityStore is the flat-call-surface constructor, equivalent to
// NewStore.
func NewEntityStore() *Store { return NewStore() }

// Entity construction.

func NewKnot(s *Store) EntityID                  { return s.NewKnot() }
func NewArrow(s *Store, src, tgt EntityID) EntityID { return s.NewArrow(src, tgt) }
func NewMark(s *Store, tgt EntityID) EntityID    { return s.NewMark(tgt) }
func NewTether(s *Store, src EntityID) EntityID  { return s.NewTether(src) }

// Endpoint access and edit.

func Src(s *Store, id EntityID) EntityID { return s.Src(id) }
func Tgt(s *Store, id EntityID) EntityID { return s.Tgt(id) }

func ChangeSrc(s *Store, id, src EntityID)       { s.ChangeSrc(id, src) }
func ChangeTgt(s *Store, id, tgt EntityID)       { s.ChangeTgt(id, tgt) }
func ChangeEnds(s *Store, id, src, tgt EntityID) { s.ChangeEnds(id, src, tgt) }

// Kind predicates.

func IsKnot(s *Store, id EntityID) bool   { return s.IsKnot(id) }
func IsArrow(s *Store, id EntityID) bool  { return s.IsArrow(id) }
func IsMark(s *Store, id EntityID) bool   { return s.IsMark(id) }
func IsTether(s *Store, id EntityID) bool { return s.IsTether(id) }
func IsValid(s *Store, id EntityID) bool  { return s.IsValid(id) }
func IsNil(s *Store, id EntityID) bool    { return s.IsNil(id) }

// Lifecycle.

func DeleteCascade(s *Store, id EntityID) { s.DeleteCascade(id) }
func DeleteOrphan(s *Store, id EntityID)  { s.DeleteOrphan(id) }

// Datatype registry.

func DefDatatype(s *Store, name string, fields []DataField) DatatypeID {
	return s.DefDatatype(name, fields)
}
func GetDatatypeID(s *Store, name string) DatatypeID      { return s.GetDatatypeID(name) }
func GetDatatypeFieldCount(s *Store, name string) int     { return s.GetDatatypeFieldCount(name) }
func GetDatatypeField(s *Store, name string, i int) DataField {
	return s.GetDatatypeField(name, i)
}

// Component CRUD.

func AddComponent(s *Store, e EntityID, name string, values []DataValue) error {
	return s.AddComponent(e, name, values)
}
func HasComponent(s *Store, e EntityID, name string) bool { return s.HasComponent(e, name) }
func GetComponent(s *Store, e EntityID, name string) []DataValue {
	return s.GetComponent(e, name)
}
func RemoveComponent(s *Store, e EntityID, name string) { s.RemoveComponent(e, name) }
func GetArchetype(s *Store, e EntityID) []DatatypeID    { return s.GetArchetype(e) }

// Shape operators.

func Parent(s *Store, root EntityID, children []EntityID)  { s.Parent(root, children) }
func Pivot(s *Store, center EntityID, children []EntityID) { s.Pivot(center, children) }
func Connect(s *Store, source EntityID, targets []EntityID) { s.Connect(source, targets) }
func Hoist(s *Store, subject EntityID, objects []EntityID)  { s.Hoist(subject, objects) }
func Annotate(s *Store, t EntityID, name string, vals []DataValue) (EntityID, error) {
	return s.Annotate(t, name, vals)
}
func Markup(s *Store, t EntityID, name string, vals []DataValue) error {
	return s.Markup(t, name, vals)
}
func GetAnnotation(s *Store, e EntityID, name string) (EntityID, bool) {
	return s.GetAnnotation(e, name)
}
func Lift(s *Store, arrows []EntityID)  { s.Lift(arrows) }
func Lower(s *Store, arrows []EntityID) { s.Lower(arrows) }

// Traversal operators.

func Primary(s *Store, it []EntityID) []EntityID  { return s.Primary(it) }
func Virtuals(s *Store, it []EntityID) []EntityID { return s.Virtuals(it) }
func Arrows(s *Store, it []EntityID) []EntityID   { return s.Arrows(it) }
func ArrowsIn(s *Store, it []EntityID) []EntityID { return s.ArrowsIn(it) }
func ArrowsOut(s *Store, it []EntityID) []EntityID { return s.ArrowsOut(it) }
func Marks(s *Store, it []EntityID) []EntityID    { return s.Marks(it) }
func Tethers(s *Store, it []EntityID) []EntityID  { return s.Tethers(it) }
func ToSrc(s *Store, it []EntityID) []EntityID    { return s.ToSrc(it) }
func ToTgt(s *Store, it []EntityID) []EntityID    { return s.ToTgt(it) }
func Hop(s *Store, a EntityID) EntityID           { return s.Hop(a) }
func Neighbors(s *Store, e EntityID) []EntityID   { return s.Neighbors(e) }
func Prev(s *Store, e EntityID) []EntityID        { return s.Prev(e) }
func PrevN(s *Store, its []EntityID) []EntityID   { return s.PrevN(its) }
func Next(s *Store, e EntityID) []EntityID        { return s.Next(e) }
func NextN(s *Store, its []EntityID) []EntityID   { return s.NextN(its) }
func Down(s *Store, e EntityID) []EntityID        { return s.Down(e) }
func DownN(s *Store, its []EntityID) []EntityID   { return s.DownN(its) }
func DownHalf(s *Store, e EntityID) (EntityID, bool) { return s.DownHalf(e) }
func Up(s *Store, e EntityID) []EntityID          { return s.Up(e) }
func UpN(s *Store, its []EntityID) []EntityID     { return s.UpN(its) }
func UpHalf(s *Store, arrow EntityID) (EntityID, bool) { return s.UpHalf(arrow) }

// Search and rewrite.

func FindAll(s *Store, hoistPattern, hoistTarget EntityID) []map[EntityID]EntityID {
	return s.FindAll(hoistPattern, hoistTarget)
}
func FindOne(s *Store, hoistPattern, hoistTarget EntityID) (map[EntityID]EntityID, bool) {
	return s.FindOne(hoistPattern, hoistTarget)
}
func Replace(s *Store, hoistPattern, hoistGoal, hoistTarget EntityID) (map[EntityID]EntityID, error) {
	return s.Replace(hoistPattern, hoistGoal, hoistTarget)
}

// Byte serialization.

func Serialize(s *Store, hoistedEnv EntityID) []byte { return s.Serialize(hoistedEnv) }
func Deserialize(s *Store, data []byte) (EntityID, error) { return s.Deserialize(data) }
