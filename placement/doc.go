// Package placement materializes objects in a scene graph at curve samples.
/*

An Engine works on a SceneGraph, the typed capability a host application
offers: looking up objects by path, creating containers, duplicating
objects, creating internal references, and setting transform attributes.
Package memscene implements it in memory; adapters for real hosts
implement the same interface.

Placement cycles through a list of template objects. Sample i is assigned
template i mod K (see Assign for other orders). For every sample a new
object is created inside one group container per call, either as a full
duplicate of its template or, in instancing mode, as a lightweight object
referencing a shared, instanceable source. The new object is translated to
the sample position and, if requested, rotated such that its forward axis
follows the curve tangent.

Instancing wraps templates without children into a container (see
PrepareTemplates). This changes the template's surroundings in the scene
graph and is done only if instancing is requested.

Placement mutates the scene graph in place. There is no rollback: if an
operation fails mid-way, the objects created so far remain.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package placement
